package valueobjects

import "fmt"

// BroadcastTarget selects the recipient cohort of a broadcast run.
type BroadcastTarget string

const (
	TargetAll          BroadcastTarget = "all"
	TargetOpenTickets  BroadcastTarget = "open_tickets"
	TargetSpecificTeam BroadcastTarget = "specific_team"
)

var validBroadcastTargets = map[BroadcastTarget]bool{
	TargetAll:          true,
	TargetOpenTickets:  true,
	TargetSpecificTeam: true,
}

func (t BroadcastTarget) String() string {
	return string(t)
}

func (t BroadcastTarget) IsValid() bool {
	return validBroadcastTargets[t]
}

// RequiresTeam reports whether the target needs a team ID to resolve.
func (t BroadcastTarget) RequiresTeam() bool {
	return t == TargetSpecificTeam
}

func NewBroadcastTarget(s string) (BroadcastTarget, error) {
	t := BroadcastTarget(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid broadcast target: %s", s)
	}
	return t, nil
}
