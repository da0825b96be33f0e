package valueobjects

import "fmt"

// Reason is the category a user picks when opening a ticket.
type Reason string

const (
	ReasonTechnicalSupport Reason = "suporte-tecnico"
	ReasonBugReport        Reason = "bug-report"
	ReasonSuggestion       Reason = "sugestao"
	ReasonBanAppeal        Reason = "ban-appeal"
	ReasonReport           Reason = "denuncia"
	ReasonOther            Reason = "outros"
)

var reasonLabels = map[Reason]string{
	ReasonTechnicalSupport: "Suporte Técnico",
	ReasonBugReport:        "Reportar Bug",
	ReasonSuggestion:       "Sugestão",
	ReasonBanAppeal:        "Apelação de Ban",
	ReasonReport:           "Denúncia",
	ReasonOther:            "Outros",
}

// AllReasons lists the reasons in form order.
func AllReasons() []Reason {
	return []Reason{
		ReasonTechnicalSupport,
		ReasonBugReport,
		ReasonSuggestion,
		ReasonBanAppeal,
		ReasonReport,
		ReasonOther,
	}
}

func (r Reason) String() string {
	return string(r)
}

func (r Reason) IsValid() bool {
	_, ok := reasonLabels[r]
	return ok
}

// Label returns the display name; unknown keys render as themselves.
func (r Reason) Label() string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return string(r)
}

func NewReason(s string) (Reason, error) {
	r := Reason(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid reason: %s", s)
	}
	return r, nil
}
