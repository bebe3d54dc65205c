package ports

import "context"

// Mutator applies changes to the advertising platform.
// There is one method per reversal the rollback engine can perform.
type Mutator interface {
	// SetKeywordBid sets the CPC bid of an ad group criterion.
	SetKeywordBid(ctx context.Context, resource string, bidMicros int64) error

	// RemoveCampaignCriterion removes a campaign criterion such as a negative keyword.
	RemoveCampaignCriterion(ctx context.Context, resource string) error

	// RemoveAdGroupCriterion removes an ad group criterion such as a keyword.
	RemoveAdGroupCriterion(ctx context.Context, resource string) error

	// EnableAd sets an ad group ad's status to enabled.
	EnableAd(ctx context.Context, resource string) error
}
