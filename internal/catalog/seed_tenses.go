package catalog

var tenseSeed = []Tense{
	{
		ID: "present-simple", Name: "Present Simple", Era: EraPresent,
		Description: "General truths and daily routines.",
		SignalWords: []string{"Always", "Usually", "Every day"},
		Formula:     Formula{Subject: "S", Verb: "V1 (s/es)", Note: "Add s/es for he, she, it."},
		Usages:      []string{"General Truth", "Habit"},
		Examples:    []Example{{Text: "She drinks milk.", Verb: "drinks", Category: "Habit"}},
	},
	{
		ID: "present-continuous", Name: "Present Continuous", Era: EraPresent,
		Description: "Actions happening right now.",
		SignalWords: []string{"Now", "At the moment"},
		Formula:     Formula{Subject: "S", Verb: "is/am/are + V-ing", Note: "Use am with I."},
		Usages:      []string{"Action now"},
		Examples:    []Example{{Text: "I am baking.", Verb: "am baking", Category: "Now"}},
	},
	{
		ID: "present-perfect", Name: "Present Perfect", Era: EraPresent,
		Description: "Just finished actions and life experience.",
		SignalWords: []string{"Already", "Yet", "Ever"},
		Formula:     Formula{Subject: "S", Verb: "has/have + V3", Note: "Has for singular subjects, have for plural and I/you."},
		Usages:      []string{"Finished action", "Experience"},
		Examples:    []Example{{Text: "I have eaten.", Verb: "have eaten", Category: "Done"}},
	},
	{
		ID: "present-perfect-continuous", Name: "Present Perfect Continuous", Era: EraPresent,
		Description: "Actions that started in the past and are still going on.",
		SignalWords: []string{"Since", "For"},
		Formula:     Formula{Subject: "S", Verb: "has/have + been + V-ing", Note: "Stresses how long it has lasted."},
		Usages:      []string{"Duration"},
		Examples:    []Example{{Text: "It has been raining.", Verb: "has been raining", Category: "Duration"}},
	},
	{
		ID: "past-simple", Name: "Past Simple", Era: EraPast,
		Description: "Events that finished in the past.",
		SignalWords: []string{"Yesterday", "Last night"},
		Formula:     Formula{Subject: "S", Verb: "V2", Note: "The past form of the verb."},
		Usages:      []string{"Past event"},
		Examples:    []Example{{Text: "I went home.", Verb: "went", Category: "Past"}},
	},
	{
		ID: "past-continuous", Name: "Past Continuous", Era: EraPast,
		Description: "Actions in progress at a point in the past.",
		SignalWords: []string{"While", "As"},
		Formula:     Formula{Subject: "S", Verb: "was/were + V-ing", Note: "Was for singular subjects, were for plural and you."},
		Usages:      []string{"Ongoing past action"},
		Examples:    []Example{{Text: "I was sleeping.", Verb: "was sleeping", Category: "Continuous past"}},
	},
	{
		ID: "past-perfect", Name: "Past Perfect", Era: EraPast,
		Description: "Events that finished before another past event.",
		SignalWords: []string{"Before", "After"},
		Formula:     Formula{Subject: "S", Verb: "had + V3", Note: "Had works with every subject."},
		Usages:      []string{"Earlier past event"},
		Examples:    []Example{{Text: "I had left.", Verb: "had left", Category: "Sequence"}},
	},
	{
		ID: "past-perfect-continuous", Name: "Past Perfect Continuous", Era: EraPast,
		Description: "Actions that kept going until another past event.",
		SignalWords: []string{"For", "Before"},
		Formula:     Formula{Subject: "S", Verb: "had + been + V-ing", Note: "Stresses the duration before a past moment."},
		Usages:      []string{"Past duration"},
		Examples:    []Example{{Text: "I had been waiting.", Verb: "had been waiting", Category: "Duration"}},
	},
	{
		ID: "future-simple", Name: "Future Simple", Era: EraFuture,
		Description: "Things that will happen in the future.",
		SignalWords: []string{"Tomorrow", "Next week"},
		Formula:     Formula{Subject: "S", Verb: "will + V (base)", Note: "The base verb never changes."},
		Usages:      []string{"Future plan"},
		Examples:    []Example{{Text: "I will go.", Verb: "will go", Category: "Future"}},
	},
	{
		ID: "future-continuous", Name: "Future Continuous", Era: EraFuture,
		Description: "Actions in progress at a point in the future.",
		SignalWords: []string{"At this time tomorrow"},
		Formula:     Formula{Subject: "S", Verb: "will + be + V-ing", Note: "Pictures the action mid-way."},
		Usages:      []string{"Ongoing future action"},
		Examples:    []Example{{Text: "I will be working.", Verb: "will be working", Category: "Future continuous"}},
	},
	{
		ID: "future-perfect", Name: "Future Perfect", Era: EraFuture,
		Description: "Actions that will be complete by a future time.",
		SignalWords: []string{"By the time", "By next month"},
		Formula:     Formula{Subject: "S", Verb: "will + have + V3", Note: "Stresses completion."},
		Usages:      []string{"Future completion"},
		Examples:    []Example{{Text: "I will have finished.", Verb: "will have finished", Category: "Completion"}},
	},
	{
		ID: "future-perfect-continuous", Name: "Future Perfect Continuous", Era: EraFuture,
		Description: "Actions that will keep going up to a point in the future.",
		SignalWords: []string{"For", "By next year"},
		Formula:     Formula{Subject: "S", Verb: "will + have + been + V-ing", Note: "Stresses duration in the future."},
		Usages:      []string{"Future duration"},
		Examples:    []Example{{Text: "I will have been working here for ten years.", Verb: "will have been working", Category: "Duration"}},
	},
}
