package catalog

// Era groups tenses by the time they describe.
type Era string

const (
	EraPresent Era = "present"
	EraPast    Era = "past"
	EraFuture  Era = "future"
)

// AllEras returns all eras in display order.
func AllEras() []Era {
	return []Era{EraPresent, EraPast, EraFuture}
}

// EraDisplayName returns a human-readable name for an era.
func EraDisplayName(e Era) string {
	switch e {
	case EraPresent:
		return "Present"
	case EraPast:
		return "Past"
	case EraFuture:
		return "Future"
	default:
		return string(e)
	}
}

// Formula is the structural pattern of a tense.
type Formula struct {
	Subject string `json:"subject"`
	Verb    string `json:"verb"`
	Note    string `json:"note"`
}

// String renders the formula as "S + verb".
func (f Formula) String() string {
	return f.Subject + " + " + f.Verb
}

// Example is a sample sentence with its verb phrase highlighted.
type Example struct {
	Text     string `json:"text"`
	Verb     string `json:"verb"`
	Category string `json:"category"`
}

// Tense is one of the twelve English verb tenses.
type Tense struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Era         Era       `json:"era"`
	Description string    `json:"description"`
	SignalWords []string  `json:"signalWords"`
	Formula     Formula   `json:"formula"`
	Usages      []string  `json:"usages"`
	Examples    []Example `json:"examples"`
}
