package wablas

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
)

// Notifier fires WhatsApp notifications without blocking the caller.
// A nil Notifier is safe to use and sends nothing.
type Notifier struct {
	gateway domain.MessageGateway
	timeout time.Duration
}

func NewNotifier(gateway domain.MessageGateway, timeout time.Duration) *Notifier {
	return &Notifier{gateway: gateway, timeout: timeout}
}

func (n *Notifier) send(phone, text string) {
	if n == nil || n.gateway == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if _, err := n.gateway.SendMessage(ctx, phone, text); err != nil {
			slog.Error("failed to send whatsapp notification", "phone", phone, "error", err)
		}
	}()
}

func formatRupiah(amount decimal.Decimal) string {
	return "Rp " + amount.StringFixed(0)
}

func (n *Notifier) NotifyAgentRegistered(agent *domain.Agent, referralLink string) {
	text := fmt.Sprintf(
		"Selamat datang di Herbamart, %s!\n\nPendaftaran Anda berhasil.\nID Agen: %s\nPaket: %s\nLink referral: %s\n\nTerima kasih telah bergabung.",
		agent.FullName, agent.AgentCode, agent.PackageTier, referralLink,
	)
	n.send(agent.Phone, text)
}

func (n *Notifier) NotifyCommissionAccrued(agent *domain.Agent, amount decimal.Decimal, level int, buyerName string) {
	text := fmt.Sprintf(
		"Halo %s, Anda mendapat komisi %s dari transaksi %s (level %d jaringan Anda). Komisi akan masuk ke saldo Anda.",
		agent.FullName, formatRupiah(amount), buyerName, level,
	)
	n.send(agent.Phone, text)
}

func (n *Notifier) NotifyWithdrawalRequested(agent *domain.Agent, amount decimal.Decimal) {
	text := fmt.Sprintf(
		"Halo %s, permintaan penarikan sebesar %s telah kami terima dan sedang diproses.",
		agent.FullName, formatRupiah(amount),
	)
	n.send(agent.Phone, text)
}

func (n *Notifier) NotifyWithdrawalDone(agent *domain.Agent, amount decimal.Decimal) {
	text := fmt.Sprintf(
		"Halo %s, penarikan sebesar %s telah berhasil ditransfer ke rekening %s a.n. %s.",
		agent.FullName, formatRupiah(amount), agent.BankAccountNumber, agent.BankAccountName,
	)
	n.send(agent.Phone, text)
}

func (n *Notifier) NotifyWithdrawalRejected(agent *domain.Agent, amount decimal.Decimal, reason string) {
	text := fmt.Sprintf(
		"Halo %s, penarikan sebesar %s tidak dapat diproses. Alasan: %s. Saldo Anda tidak berkurang.",
		agent.FullName, formatRupiah(amount), reason,
	)
	n.send(agent.Phone, text)
}

func (n *Notifier) NotifyRewardClaimed(agent *domain.Agent, rewardName string) {
	text := fmt.Sprintf(
		"Selamat %s! Klaim reward %q Anda telah kami terima dan sedang diverifikasi.",
		agent.FullName, rewardName,
	)
	n.send(agent.Phone, text)
}
