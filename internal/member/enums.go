package member

// Option is one selectable value of an enum field.
type Option struct {
	Value string
	Label string
}

var GenderOptions = []Option{
	{"MALE", "Male"},
	{"FEMALE", "Female"},
	{"OTHER", "Other"},
}

var EducationGradeOptions = []Option{
	{"NO_GRADE", "No Grade"},
	{"PRE_KG", "Pre-Kg"},
	{"KG", "Kg"},
	{"GRADE_1", "Grade 1"},
	{"GRADE_2", "Grade 2"},
	{"GRADE_3", "Grade 3"},
	{"GRADE_4", "Grade 4"},
	{"GRADE_5", "Grade 5"},
	{"GRADE_6", "Grade 6"},
	{"GRADE_7", "Grade 7"},
	{"GRADE_8", "Grade 8"},
	{"GRADE_9", "Grade 9"},
	{"GRADE_10", "Grade 10"},
	{"GRADE_11", "Grade 11"},
	{"GRADE_12", "Grade 12"},
	{"GRADUATE", "Graduate"},
}

var EmploymentStatusOptions = []Option{
	{"FULL_TIME", "Full-Time"},
	{"PART_TIME", "Part-Time"},
	{"UNEMPLOYED", "Unemployed"},
}

// The API spells the separated status this way.
var MaritalStatusOptions = []Option{
	{"SINGLE", "Single"},
	{"ENGAGED", "Engaged"},
	{"MARRIED", "Married"},
	{"DIVORCED", "Divorced"},
	{"WIDOWED", "Widowed"},
	{"SEPERATED", "Separated"},
}

var LanguageOptions = []Option{
	{"en", "English"},
	{"fr", "French"},
	{"hi", "Hindi"},
	{"sp", "Spanish"},
	{"zh", "Chinese"},
}

// Cycle returns the option delta steps away from current, wrapping around.
// An unknown current value starts from the first option.
func Cycle(options []Option, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o.Value == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta < 0 {
			return options[len(options)-1].Value
		}
		return options[0].Value
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n].Value
}

// LabelFor returns the display label of value, or value itself when unknown.
func LabelFor(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// LanguageName maps an app language code to its name.
func LanguageName(code string) string {
	for _, o := range LanguageOptions {
		if o.Value == code {
			return o.Label
		}
	}
	return "Unavailable"
}
