package command

// ═══════════════════════════════════════════════════════════════════════════
// ENGINE
// Bundles every command handler over one shared Deps, so callers wire the
// collaborators once and get the whole mutating surface.
// ═══════════════════════════════════════════════════════════════════════════

// Engine is the single entry point for state-changing operations.
type Engine struct {
	Login                 *LoginHandler
	ChangeCredential      *ChangeCredentialHandler
	ReviewRepresentative  *ReviewRepresentativeHandler
	PostOpportunity       *PostOpportunityHandler
	EditOpportunity       *EditOpportunityHandler
	DeleteOpportunity     *DeleteOpportunityHandler
	ReviewOpportunity     *ReviewOpportunityHandler
	SubmitApplication     *SubmitApplicationHandler
	DecideApplication     *DecideApplicationHandler
	AcceptOffer           *AcceptOfferHandler
	WithdrawApplication   *WithdrawApplicationHandler
	RequestWithdrawal     *RequestWithdrawalHandler
	ReviewWithdrawal      *ReviewWithdrawalHandler
	ResetWithdrawalReview *ResetWithdrawalReviewHandler

	deps *Deps
}

// NewEngine wires every handler over the given dependencies.
func NewEngine(deps *Deps) *Engine {
	return &Engine{
		Login:                 NewLoginHandler(deps),
		ChangeCredential:      NewChangeCredentialHandler(deps),
		ReviewRepresentative:  NewReviewRepresentativeHandler(deps),
		PostOpportunity:       NewPostOpportunityHandler(deps),
		EditOpportunity:       NewEditOpportunityHandler(deps),
		DeleteOpportunity:     NewDeleteOpportunityHandler(deps),
		ReviewOpportunity:     NewReviewOpportunityHandler(deps),
		SubmitApplication:     NewSubmitApplicationHandler(deps),
		DecideApplication:     NewDecideApplicationHandler(deps),
		AcceptOffer:           NewAcceptOfferHandler(deps),
		WithdrawApplication:   NewWithdrawApplicationHandler(deps),
		RequestWithdrawal:     NewRequestWithdrawalHandler(deps),
		ReviewWithdrawal:      NewReviewWithdrawalHandler(deps),
		ResetWithdrawalReview: NewResetWithdrawalReviewHandler(deps),
		deps:                  deps,
	}
}

// Deps exposes the engine's dependency bundle for query-side sharing of the
// same guard and collections.
func (e *Engine) Deps() *Deps { return e.deps }
