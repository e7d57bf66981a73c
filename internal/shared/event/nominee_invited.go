package event

const NomineeInvitedDestination string = "vault_nominee_invited"
const NomineeInvitedConsumerNotification string = "vault_nominee_invited_notification"

type NomineeInvitedMessage struct {
	OwnerMobile   string `json:"owner_mobile"`
	NomineeID     int64  `json:"nominee_id"`
	NomineeName   string `json:"nominee_name"`
	NomineeMobile string `json:"nominee_mobile"`
	NomineeEmail  string `json:"nominee_email"`
	Relation      string `json:"relation"`
}
