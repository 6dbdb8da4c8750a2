package triage

// Keyword tables driving the deterministic classifiers. All entries are
// pre-normalized: lowercase, ASCII, diacritics stripped. English and
// Hungarian are covered; input text goes through textnorm.Normalize before
// matching, so accented user input still hits these.

// highRiskKeywords mark emergency symptoms
var highRiskKeywords = []string{
	"chest pain",
	"shortness of breath",
	"faint",
	"fainted",
	"seizure",
	"stroke",
	"numbness",
	"severe bleeding",
	"vomiting blood",
	"suicidal",
	"cannot breathe",
	"mellkasi fajdalom",
	"nem kapok levegot",
	"legszomj",
	"elajulas",
	"gorcsroham",
	"verzes",
	"vert hanyok",
	"szelutes",
	"ongyilkos",
}

// moderateRiskKeywords mark persistent or chronic, non-emergency symptoms
var moderateRiskKeywords = []string{
	"fever",
	"persistent pain",
	"migraine",
	"rash",
	"infection",
	"dizziness",
	"joint pain",
	"stomach pain",
	"palpitations",
	"anxiety",
	"depression",
	"laz",
	"fajdalom",
	"migren",
	"kiutes",
	"fertozes",
	"szedules",
	"izuleti fajdalom",
	"hasi fajdalom",
	"szivdobogas",
	"szorongas",
	"depresszio",
}

// helpIntentKeywords catch generic help-seeking language; they map to
// moderate risk, never high
var helpIntentKeywords = []string{
	"help",
	"need help",
	"symptom",
	"medical",
	"problem",
	"segits",
	"segitseg",
	"tunet",
	"orvos",
	"beteg",
	"egeszsegugyi problema",
}

type specialtyMatcher struct {
	Specialty string
	Keywords  []string
}

// specialtyMatchers is ordered: ties on score keep the earliest entry.
var specialtyMatchers = []specialtyMatcher{
	{
		Specialty: "Cardiology",
		Keywords:  []string{"heart", "chest", "palpitation", "blood pressure", "sziv", "mellkas", "vernyomas", "szivdobogas"},
	},
	{
		Specialty: "Pulmonology",
		Keywords:  []string{"breath", "lung", "cough", "asthma", "legzes", "legszomj", "tudo", "kohoges", "asztma"},
	},
	{
		Specialty: "Neurology",
		Keywords:  []string{"headache", "migraine", "seizure", "numb", "dizzy", "fejfajas", "migren", "zsibbadas", "szedules", "gorcsroham"},
	},
	{
		Specialty: "Dermatology",
		Keywords:  []string{"skin", "rash", "acne", "eczema", "itch", "bor", "kiutes", "viszketes"},
	},
	{
		Specialty: "Gastroenterology",
		Keywords:  []string{"stomach", "gut", "nausea", "reflux", "diarrhea", "has", "hanyinger", "hasmenes", "gyomor"},
	},
	{
		Specialty: "Orthopedics",
		Keywords:  []string{"knee", "back pain", "joint", "shoulder", "bone", "terd", "hatfajas", "izulet", "vall", "csont"},
	},
	{
		Specialty: "Endocrinology",
		Keywords:  []string{"thyroid", "hormone", "diabetes", "insulin", "pajzsmirigy", "hormon", "cukorbetegseg"},
	},
	{
		Specialty: "Psychiatry",
		Keywords:  []string{"anxiety", "panic", "depression", "insomnia", "stress", "szorongas", "panik", "depresszio", "almatlansag", "stressz"},
	},
	{
		Specialty: "Gynecology",
		Keywords:  []string{"period", "pregnancy", "pelvic", "ovary", "menstruacio", "menstruacios", "terhesseg", "medence", "petefeszek", "alhasi", "ciklus", "havi verzes"},
	},
	{
		Specialty: "ENT",
		Keywords:  []string{"ear", "nose", "throat", "sinus", "ful", "orr", "torok", "arcureg"},
	},
}
