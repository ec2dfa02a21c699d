package bootstrap

import (
	"referral-access/internal/clients/referralapi"
	"referral-access/internal/config"
	"referral-access/internal/crypto"
	"referral-access/internal/observability"

	dashboardHandler "referral-access/internal/dashboard/handler"
	dashboardProcessor "referral-access/internal/dashboard/processor"
	decisionHandler "referral-access/internal/decision/handler"
	decisionProcessor "referral-access/internal/decision/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	Logger         *observability.Logger
	ReferralClient *referralapi.Client

	DashboardHandler dashboardHandler.Handler
	DecisionHandler  decisionHandler.Handler
}

// Initialize wires the field crypto, the referral service client and the
// feature handlers.
func Initialize(cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	fieldCrypto, err := crypto.FromConfig(cfg.Crypto.KeyHex, cfg.Crypto.Passphrase, cfg.Crypto.Salt)
	if err != nil {
		return nil, err
	}

	referralClient := referralapi.New(cfg.ReferralService.BaseURL, fieldCrypto, logger)

	dashboardProc := dashboardProcessor.New(referralClient, logger)
	decisionProc := decisionProcessor.New(referralClient, cfg.ReferralService.ShowTeam, logger)

	return &Dependencies{
		Logger:           logger,
		ReferralClient:   referralClient,
		DashboardHandler: dashboardHandler.New(dashboardProc, logger),
		DecisionHandler:  decisionHandler.New(decisionProc, logger),
	}, nil
}
