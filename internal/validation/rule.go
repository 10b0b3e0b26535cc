package validation

import (
	"github.com/jouerflux/jouerflux/internal/models"
)

// RuleInput is an unvalidated rule as received from a client. Port keeps
// whatever type the decoder produced so non-integers can be rejected.
type RuleInput struct {
	Action        string `json:"action"`
	Protocol      string `json:"protocol"`
	SourceIP      string `json:"source_ip"`
	DestinationIP string `json:"destination_ip"`
	Port          any    `json:"port"`
}

// RuleSpec is a rule that passed every check, with canonical addresses.
type RuleSpec struct {
	Action        models.Action
	Protocol      models.Protocol
	SourceIP      string
	DestinationIP string
	Port          *int
}

// ValidateRule checks every field of in. TCP and UDP rules need a port in
// range; every other protocol must leave the port unset.
func ValidateRule(in RuleInput) (RuleSpec, error) {
	var spec RuleSpec
	var err error

	if spec.Action, err = ParseAction(in.Action); err != nil {
		return RuleSpec{}, withField(err, "action")
	}
	if spec.Protocol, err = ParseProtocol(in.Protocol); err != nil {
		return RuleSpec{}, withField(err, "protocol")
	}

	switch {
	case spec.Protocol.UsesPorts() && in.Port == nil:
		return RuleSpec{}, &Error{Field: "port", Err: ErrPortRequired, Msg: "port must be specified for TCP/UDP protocols"}
	case spec.Protocol.UsesPorts():
		port, err := ValidatePort(in.Port)
		if err != nil {
			return RuleSpec{}, withField(err, "port")
		}
		spec.Port = &port
	case in.Port != nil:
		return RuleSpec{}, &Error{Field: "port", Err: ErrPortForbidden, Msg: "port must be null for non-TCP/UDP protocols"}
	}

	if spec.SourceIP, err = ValidateIP(in.SourceIP); err != nil {
		return RuleSpec{}, withField(err, "source_ip")
	}
	if spec.DestinationIP, err = ValidateIP(in.DestinationIP); err != nil {
		return RuleSpec{}, withField(err, "destination_ip")
	}
	return spec, nil
}
