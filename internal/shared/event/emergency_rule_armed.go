package event

const EmergencyRuleArmedDestination string = "vault_emergency_rule_armed"
const EmergencyRuleArmedConsumerNotification string = "vault_emergency_rule_armed_notification"

type EmergencyRuleArmedMessage struct {
	OwnerMobile       string `json:"owner_mobile"`
	OwnerEmail        string `json:"owner_email"`
	InactivityDays    int32  `json:"inactivity_days"`
	RequireDeathProof bool   `json:"require_death_proof"`
}
