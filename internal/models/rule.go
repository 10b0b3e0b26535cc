package models

// Action decides what happens to traffic matched by a rule.
type Action string

const (
	ActionAllow Action = "ALLOW"
	ActionDeny  Action = "DENY"
)

// Actions lists every legal Action in declaration order.
func Actions() []Action {
	return []Action{ActionAllow, ActionDeny}
}

// Protocol is the IP protocol a rule applies to.
type Protocol string

const (
	ProtocolTCP  Protocol = "TCP"
	ProtocolUDP  Protocol = "UDP"
	ProtocolICMP Protocol = "ICMP"
	ProtocolGRE  Protocol = "GRE"
	ProtocolESP  Protocol = "ESP"
	ProtocolAH   Protocol = "AH"
	ProtocolAll  Protocol = "ALL"
)

// Protocols lists every legal Protocol in declaration order.
func Protocols() []Protocol {
	return []Protocol{ProtocolTCP, ProtocolUDP, ProtocolICMP, ProtocolGRE, ProtocolESP, ProtocolAH, ProtocolAll}
}

// UsesPorts reports whether the protocol carries port numbers.
// Rules for these protocols must have a port; all others must not.
func (p Protocol) UsesPorts() bool {
	return p == ProtocolTCP || p == ProtocolUDP
}

// Rule is a single allow/deny directive belonging to exactly one policy.
type Rule struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	Action        Action   `json:"action" gorm:"size:5;not null"`
	SourceIP      string   `json:"source_ip" gorm:"size:45;not null"`
	DestinationIP string   `json:"destination_ip" gorm:"size:45;not null"`
	Protocol      Protocol `json:"protocol" gorm:"size:4;not null"`
	Port          *int     `json:"port"`
	PolicyID      uint     `json:"-" gorm:"not null;index"`
}
