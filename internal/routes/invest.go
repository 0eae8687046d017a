package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmvest/farmvest/internal/investment"
	"github.com/farmvest/farmvest/internal/payout"
	"github.com/farmvest/farmvest/internal/wallet"
)

// RegisterInvestorRoutes wires the authenticated investor endpoints.
func RegisterInvestorRoutes(r fiber.Router, walletHandler *wallet.Handler, investmentHandler *investment.Handler, payoutHandler *payout.Handler) {
	invest := r.Group("/invest")
	invest.Get("/wallet", walletHandler.Balance)
	invest.Post("/deposit", walletHandler.Deposit)
	invest.Get("/transactions", walletHandler.Transactions)
	invest.Post("/create", investmentHandler.Create)
	invest.Get("/my", investmentHandler.My)
	invest.Get("/payouts/:investmentId", payoutHandler.ListForInvestment)
}
