package solver

import "problem-solver-be/internal/constant"

// Subject is one entry of the closed subject catalogue. Icon and Color are
// presentation hints passed through to clients untouched.
type Subject struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var subjects = []Subject{
	{Value: "math", Label: "Математика", Icon: "Calculator", Color: "bg-primary"},
	{Value: "physics", Label: "Физика", Icon: "Atom", Color: "bg-secondary"},
	{Value: "chemistry", Label: "Химия", Icon: "Flask", Color: "bg-accent"},
	{Value: "russian", Label: "Русский язык", Icon: "BookOpen", Color: "bg-primary"},
	{Value: "literature", Label: "Литература", Icon: "Book", Color: "bg-secondary"},
	{Value: "biology", Label: "Биология", Icon: "Leaf", Color: "bg-accent"},
}

// Subjects returns the catalogue in display order.
func Subjects() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

func LookupSubject(value string) (Subject, bool) {
	for _, s := range subjects {
		if s.Value == value {
			return s, true
		}
	}
	return Subject{}, false
}

// DefaultSubject is the subject every new session starts with.
func DefaultSubject() Subject {
	s, _ := LookupSubject(constant.DefaultSubjectValue)
	return s
}

// LabelFor maps a subject value to its label, falling back to the default
// subject's label for values outside the catalogue.
func LabelFor(value string) string {
	if s, ok := LookupSubject(value); ok {
		return s.Label
	}
	return constant.DefaultSubjectLabel
}
