package catalog

var preTestSeed = []Question{
	{ID: 1, Sentence: "Water ___ at 100 degrees Celsius.", Correct: "boils", Options: []string{"boil", "boils", "is boiling", "boiled"}, Tense: "Present Simple", Explanation: "A scientific fact, so use Present Simple."},
	{ID: 2, Sentence: "Look! The cat ___ on the roof.", Correct: "is sitting", Options: []string{"sits", "sat", "is sitting", "has sat"}, Tense: "Present Continuous", Explanation: "\"Look!\" shows it is happening now, so use Present Continuous."},
	{ID: 3, Sentence: "I ___ this book already.", Correct: "have read", Options: []string{"read", "am reading", "have read", "will read"}, Tense: "Present Perfect", Explanation: "\"already\" marks an action completed by now, so use Present Perfect."},
	{ID: 4, Sentence: "Yesterday, we ___ to the cinema.", Correct: "went", Options: []string{"go", "goes", "went", "going"}, Tense: "Past Simple", Explanation: "\"Yesterday\" is a finished past time, so use Past Simple (V2)."},
	{ID: 5, Sentence: "While I ___ TV, the phone rang.", Correct: "was watching", Options: []string{"watch", "watched", "was watching", "had watched"}, Tense: "Past Continuous", Explanation: "An action in progress in the past was interrupted, so use Past Continuous."},
	{ID: 6, Sentence: "He ___ English for five years before he moved to London.", Correct: "had been studying", Options: []string{"studies", "is studying", "had studied", "had been studying"}, Tense: "Past Perfect Continuous", Explanation: "Stresses an action that kept going before another past event."},
	{ID: 7, Sentence: "I think it ___ tomorrow.", Correct: "will rain", Options: []string{"rains", "is raining", "will rain", "has rained"}, Tense: "Future Simple", Explanation: "A prediction about the future, so use Future Simple."},
	{ID: 8, Sentence: "By the time you arrive, I ___ my work.", Correct: "will have finished", Options: []string{"finish", "will finish", "will have finished", "have finished"}, Tense: "Future Perfect", Explanation: "\"By the time\" marks completion before a future moment."},
	{ID: 9, Sentence: "She usually ___ up at 6 AM.", Correct: "gets", Options: []string{"get", "gets", "got", "is getting"}, Tense: "Present Simple", Explanation: "\"usually\" describes a routine, so use Present Simple."},
	{ID: 10, Sentence: "They ___ soccer at the moment.", Correct: "are playing", Options: []string{"play", "played", "are playing", "have played"}, Tense: "Present Continuous", Explanation: "\"at the moment\" shows it is happening right now."},
	{ID: 11, Sentence: "I ___ to Japan twice.", Correct: "have been", Options: []string{"was", "am", "have been", "go"}, Tense: "Present Perfect", Explanation: "Life experience without a specific time."},
	{ID: 12, Sentence: "Last night, I ___ a strange noise.", Correct: "heard", Options: []string{"hear", "heard", "was hearing", "had heard"}, Tense: "Past Simple", Explanation: "\"Last night\" is a finished past time."},
	{ID: 13, Sentence: "They ___ dinner when the light went out.", Correct: "were having", Options: []string{"have", "had", "were having", "has had"}, Tense: "Past Continuous", Explanation: "An action in progress was interrupted by another event."},
	{ID: 14, Sentence: "He ___ before I arrived.", Correct: "had left", Options: []string{"left", "has left", "had left", "was leaving"}, Tense: "Past Perfect", Explanation: "An event that finished before another past event."},
	{ID: 15, Sentence: "I think I ___ at home tonight.", Correct: "will be", Options: []string{"am", "was", "will be", "have been"}, Tense: "Future Simple", Explanation: "A prediction about tonight."},
	{ID: 16, Sentence: "We ___ for two hours when the bus finally came.", Correct: "had been waiting", Options: []string{"waited", "were waiting", "had waited", "had been waiting"}, Tense: "Past Perfect Continuous", Explanation: "Stresses how long it lasted up to a past moment."},
	{ID: 17, Sentence: "Next month, I ___ in this company for ten years.", Correct: "will have been working", Options: []string{"will work", "will have worked", "will have been working", "work"}, Tense: "Future Perfect Continuous", Explanation: "Duration that will add up to a future point."},
	{ID: 18, Sentence: "Listen! The baby ___.", Correct: "is crying", Options: []string{"cries", "cried", "is crying", "has cried"}, Tense: "Present Continuous", Explanation: "\"Listen!\" points at something happening now."},
	{ID: 19, Sentence: "I ___ my keys. I can't find them.", Correct: "have lost", Options: []string{"lost", "lose", "have lost", "had lost"}, Tense: "Present Perfect", Explanation: "A recent event with a result now (I can't find them)."},
	{ID: 20, Sentence: "They ___ to Paris next summer.", Correct: "will travel", Options: []string{"travel", "travels", "will travel", "traveled"}, Tense: "Future Simple", Explanation: "A plan for the future."},
}

var postTestSeed = []Question{
	{ID: 101, Sentence: "The moon ___ around the Earth.", Correct: "goes", Options: []string{"go", "goes", "is going", "went"}, Tense: "Present Simple", Explanation: "A permanent scientific truth."},
	{ID: 102, Sentence: "Quiet! I ___ to the news.", Correct: "am listening", Options: []string{"listen", "listened", "am listening", "have listened"}, Tense: "Present Continuous", Explanation: "\"Quiet!\" means something needs focus right now."},
	{ID: 103, Sentence: "She ___ her keys. She is looking for them now.", Correct: "has lost", Options: []string{"loses", "lost", "has lost", "had lost"}, Tense: "Present Perfect", Explanation: "The result reaches the present: she is looking now."},
	{ID: 104, Sentence: "I ___ a big sandwich for lunch yesterday.", Correct: "ate", Options: []string{"eat", "eats", "ate", "eaten"}, Tense: "Past Simple", Explanation: "\"yesterday\" is a specific past time."},
	{ID: 105, Sentence: "He ___ his bike when he fell off.", Correct: "was riding", Options: []string{"rides", "rode", "was riding", "had ridden"}, Tense: "Past Continuous", Explanation: "An action in progress was interrupted by an accident."},
	{ID: 106, Sentence: "They ___ the house before the guests arrived.", Correct: "had cleaned", Options: []string{"clean", "cleaned", "have cleaned", "had cleaned"}, Tense: "Past Perfect", Explanation: "Cleaning finished before the guests came."},
	{ID: 107, Sentence: "Next year, my sister ___ university.", Correct: "will start", Options: []string{"starts", "is starting", "will start", "has started"}, Tense: "Future Simple", Explanation: "An expected future event."},
	{ID: 108, Sentence: "By 2030, I ___ from high school.", Correct: "will have graduated", Options: []string{"graduate", "will graduate", "will have graduated", "have graduated"}, Tense: "Future Perfect", Explanation: "\"By\" plus a future year marks completion at that time."},
	{ID: 109, Sentence: "Dogs ___ bark at strangers.", Correct: "usually", Options: []string{"usually", "now", "yesterday", "since"}, Tense: "Present Simple", Explanation: "Habits use Present Simple with an adverb of frequency."},
	{ID: 110, Sentence: "Don't bother him. He ___.", Correct: "is sleeping", Options: []string{"sleeps", "is sleeping", "slept", "has slept"}, Tense: "Present Continuous", Explanation: "He is asleep right now."},
	{ID: 111, Sentence: "I ___ her for ten years.", Correct: "have known", Options: []string{"know", "am knowing", "have known", "had known"}, Tense: "Present Perfect", Explanation: "\"know\" is rarely continuous, so Present Perfect carries the duration."},
	{ID: 112, Sentence: "Two days ago, I ___ my old friend.", Correct: "met", Options: []string{"meet", "met", "was meeting", "have met"}, Tense: "Past Simple", Explanation: "\"ago\" marks a clear past time."},
	{ID: 113, Sentence: "While Mom was cooking, Dad ___ the garden.", Correct: "was watering", Options: []string{"waters", "watered", "was watering", "is watering"}, Tense: "Past Continuous", Explanation: "Two actions in progress at the same time in the past."},
	{ID: 114, Sentence: "When I arrived at the station, the train ___.", Correct: "had already left", Options: []string{"leaves", "is leaving", "has left", "had already left"}, Tense: "Past Perfect", Explanation: "The train left before I arrived."},
	{ID: 115, Sentence: "I promise I ___ you back tomorrow.", Correct: "will pay", Options: []string{"pay", "pays", "will pay", "am paying"}, Tense: "Future Simple", Explanation: "Use will for promises."},
	{ID: 116, Sentence: "He ___ for the test all night.", Correct: "has been studying", Options: []string{"studies", "is studying", "has been studying", "studied"}, Tense: "Present Perfect Continuous", Explanation: "Stresses effort that has continued up to now."},
	{ID: 117, Sentence: "By the end of this month, I ___ here for a year.", Correct: "will have been living", Options: []string{"will live", "will have lived", "will have been living", "live"}, Tense: "Future Perfect Continuous", Explanation: "Duration counted up to a future point."},
	{ID: 118, Sentence: "The pink bakery ___ at 8:00 every morning.", Correct: "opens", Options: []string{"open", "opens", "is opening", "opened"}, Tense: "Present Simple", Explanation: "Timetables use Present Simple."},
	{ID: 119, Sentence: "Look at those clouds! It ___ rain.", Correct: "is going to", Options: []string{"will", "is going to", "rains", "has rained"}, Tense: "Future Simple", Explanation: "Use be going to for predictions with visible evidence."},
	{ID: 120, Sentence: "I ___ a pink elephant before.", Correct: "have seen", Options: []string{"see", "saw", "have seen", "had seen"}, Tense: "Present Perfect", Explanation: "Life experience up to now."},
	{ID: 121, Sentence: "Last summer, we ___ many strawberries.", Correct: "picked", Options: []string{"pick", "picks", "picked", "were picking"}, Tense: "Past Simple", Explanation: "A completed event in the past (last summer)."},
	{ID: 122, Sentence: "She ___ when she heard the news.", Correct: "was crying", Options: []string{"cries", "cried", "was crying", "is crying"}, Tense: "Past Continuous", Explanation: "An action already in progress in the past."},
	{ID: 123, Sentence: "I ___ my homework before I went out.", Correct: "had finished", Options: []string{"finish", "finished", "has finished", "had finished"}, Tense: "Past Perfect", Explanation: "Homework finished first, then I went out."},
	{ID: 124, Sentence: "I ___ you later.", Correct: "will call", Options: []string{"call", "calls", "will call", "am calling"}, Tense: "Future Simple", Explanation: "An instant decision."},
	{ID: 125, Sentence: "She ___ English since she was five.", Correct: "has been learning", Options: []string{"learns", "is learning", "has been learning", "learned"}, Tense: "Present Perfect Continuous", Explanation: "Continuous from the past until now (since)."},
	{ID: 126, Sentence: "In 2050, people ___ flying cars.", Correct: "will be driving", Options: []string{"drive", "will drive", "will be driving", "are driving"}, Tense: "Future Continuous", Explanation: "Something in progress in the distant future."},
	{ID: 127, Sentence: "They ___ all the food by the time we got there.", Correct: "had eaten", Options: []string{"eat", "ate", "have eaten", "had eaten"}, Tense: "Past Perfect", Explanation: "They finished eating before we arrived."},
	{ID: 128, Sentence: "I ___ a bath when the doorbell rang.", Correct: "was taking", Options: []string{"take", "took", "was taking", "am taking"}, Tense: "Past Continuous", Explanation: "In the middle of a bath when the doorbell interrupted."},
	{ID: 129, Sentence: "He ___ to the gym every Friday.", Correct: "goes", Options: []string{"go", "goes", "is going", "went"}, Tense: "Present Simple", Explanation: "A routine (habit)."},
	{ID: 130, Sentence: "I ___ here for three hours when she finally arrived.", Correct: "had been waiting", Options: []string{"waited", "was waiting", "had waited", "had been waiting"}, Tense: "Past Perfect Continuous", Explanation: "Stresses the waiting time before another past event."},
}

var scrambleSeed = []Question{
	{ID: 501, Sentence: "The kitten is sleeping on the rug", Correct: "The kitten is sleeping on the rug", Tokens: []string{"sleeping", "on", "kitten", "is", "The", "the", "rug"}, Tense: "Present Continuous"},
	{ID: 502, Sentence: "I will bake a pink cake tomorrow", Correct: "I will bake a pink cake tomorrow", Tokens: []string{"bake", "tomorrow", "will", "a", "cake", "pink", "I"}, Tense: "Future Simple"},
	{ID: 503, Sentence: "She has lost her magic wand", Correct: "She has lost her magic wand", Tokens: []string{"has", "magic", "lost", "her", "wand", "She"}, Tense: "Present Perfect"},
}

var matchSeed = []Question{
	{ID: 601, Sentence: "I study English every Monday.", Correct: "Present Simple", Options: []string{"Present Simple", "Present Continuous", "Past Simple", "Future Simple"}, Tense: "Present Simple"},
	{ID: 602, Sentence: "We were dancing at 8 PM.", Correct: "Past Continuous", Options: []string{"Past Simple", "Past Continuous", "Present Perfect", "Future Simple"}, Tense: "Past Continuous"},
	{ID: 603, Sentence: "By next year, I will have graduated.", Correct: "Future Perfect", Options: []string{"Future Simple", "Future Perfect", "Present Perfect", "Past Perfect"}, Tense: "Future Perfect"},
}

var gardenSeed = []Question{
	{ID: 201, Sentence: "Roses ___ lovely in the morning.", Correct: "look", Options: []string{"look", "looks", "looking", "looked"}, Tense: "Present Simple"},
	{ID: 202, Sentence: "The sun ___ brightly today.", Correct: "is shining", Options: []string{"shines", "is shining", "shone", "will shine"}, Tense: "Present Continuous"},
}

var machineSeed = []Question{
	{ID: 301, Sentence: "I see a butterfly.", TargetTense: "Past Simple", Correct: "I saw a butterfly.", Options: []string{"I saw a butterfly.", "I am seeing a butterfly.", "I have seen a butterfly.", "I will see a butterfly."}, Tense: "Past Simple"},
	{ID: 302, Sentence: "She is singing.", TargetTense: "Future Simple", Correct: "She will sing.", Options: []string{"She sang.", "She will sing.", "She sings.", "She has sung."}, Tense: "Future Simple"},
}

var questSeed = []Question{
	{ID: 401, Sentence: "He always drink coffee.", WrongPart: "drink", Correct: "drinks", Options: []string{"drink", "drinks", "drinking", "drank"}, Tense: "Present Simple"},
	{ID: 402, Sentence: "They was playing football.", WrongPart: "was", Correct: "were", Options: []string{"was", "were", "been", "be"}, Tense: "Past Continuous"},
}
