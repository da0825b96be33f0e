package valueobjects

import "fmt"

type SenderType string

const (
	SenderUser   SenderType = "user"
	SenderAdmin  SenderType = "admin"
	SenderSystem SenderType = "system"
)

func (s SenderType) String() string {
	return string(s)
}

func (s SenderType) IsValid() bool {
	switch s {
	case SenderUser, SenderAdmin, SenderSystem:
		return true
	}
	return false
}

func (s SenderType) IsSystem() bool {
	return s == SenderSystem
}

func NewSenderType(s string) (SenderType, error) {
	st := SenderType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid sender type: %s", s)
	}
	return st, nil
}
