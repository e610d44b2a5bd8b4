package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/herbamart/network-service/internal/domain"
	agentdto "github.com/herbamart/network-service/internal/usecase/dto/agent"
)

func TestRegisterAgentAssignsProvinceCode(t *testing.T) {
	env := newTestEnv(t)

	output := env.registerAgent(t, 1, "")
	if !strings.HasPrefix(output.AgentCode, "JB-") {
		t.Errorf("agent code = %q, want JB- prefix for Jawa Barat", output.AgentCode)
	}
	if len(output.AgentCode) != len("JB-")+6 {
		t.Errorf("agent code = %q, want two-digit year plus four-digit sequence", output.AgentCode)
	}
	if output.ReferralCode == "" {
		t.Error("referral code not generated")
	}
	if !strings.HasSuffix(output.ReferralLink, output.ReferralCode) {
		t.Errorf("referral link %q does not end in referral code %q", output.ReferralLink, output.ReferralCode)
	}
	if output.Phone != "6281234567801" {
		t.Errorf("phone = %q, want normalized 62 form", output.Phone)
	}
	if output.Rank != domain.RankAgen {
		t.Errorf("initial rank = %s, want AGEN", output.Rank)
	}
}

func TestRegisterAgentUnknownProvinceFallsBack(t *testing.T) {
	env := newTestEnv(t)

	output, err := env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      1,
		FullName:    "Agent Abroad",
		Phone:       "081234567890",
		Province:    "Kuala Lumpur",
		PackageTier: domain.TierSilver,
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if !strings.HasPrefix(output.AgentCode, "XX-") {
		t.Errorf("agent code = %q, want XX- prefix for unknown province", output.AgentCode)
	}
}

func TestRegisterAgentValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      1,
		FullName:    "",
		Phone:       "081234567890",
		Province:    "Jawa Barat",
		PackageTier: domain.TierSilver,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty name: want ErrValidation, got %v", err)
	}

	_, err = env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      1,
		FullName:    "Agent",
		Phone:       "081234567890",
		Province:    "Jawa Barat",
		PackageTier: "BRONZE",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown tier: want ErrValidation, got %v", err)
	}

	_, err = env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      1,
		FullName:    "Agent",
		Phone:       "+14155550123",
		Province:    "Jawa Barat",
		PackageTier: domain.TierSilver,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("foreign phone: want ErrValidation, got %v", err)
	}
}

func TestRegisterAgentConflictsAndSponsors(t *testing.T) {
	env := newTestEnv(t)

	sponsor := env.registerAgent(t, 1, "")

	_, err := env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      1,
		FullName:    "Same User",
		Phone:       "081234567899",
		Province:    "Jawa Barat",
		PackageTier: domain.TierSilver,
	})
	if !errors.Is(err, domain.ErrUserAlreadyAgent) {
		t.Errorf("want ErrUserAlreadyAgent, got %v", err)
	}

	_, err = env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      2,
		FullName:    "Orphan",
		Phone:       "081234567898",
		Province:    "Jawa Barat",
		SponsorCode: "JB-999999",
		PackageTier: domain.TierSilver,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown sponsor: want ErrNotFound, got %v", err)
	}

	child := env.registerAgent(t, 2, sponsor.AgentCode)
	if child.SponsorID == nil || *child.SponsorID != sponsor.ID {
		t.Errorf("child sponsor = %v, want %d", child.SponsorID, sponsor.ID)
	}

	chain, err := env.agentUc.GetUplineChain(child.ID)
	if err != nil {
		t.Fatalf("failed to get upline: %v", err)
	}
	if len(chain) != 1 || chain[0].Agent.ID != sponsor.ID || chain[0].Level != 1 {
		t.Errorf("upline chain = %v, want sponsor at level 1", chain)
	}
}

func TestGetDashboardStatsCountsWholeDownline(t *testing.T) {
	env := newTestEnv(t)

	root := env.registerAgent(t, 1, "")
	childA := env.registerAgent(t, 2, root.AgentCode)
	env.registerAgent(t, 3, root.AgentCode)
	grandchild := env.registerAgent(t, 4, childA.AgentCode)

	stats, err := env.agentUc.GetDashboardStats(root.ID)
	if err != nil {
		t.Fatalf("failed to load dashboard stats: %v", err)
	}
	if stats.TotalDownlines != 3 {
		t.Errorf("total downlines = %d, want 3 across all levels", stats.TotalDownlines)
	}
	if stats.SilverDownlines != 3 {
		t.Errorf("silver downlines = %d, want 3", stats.SilverDownlines)
	}

	leaf, err := env.agentUc.GetDashboardStats(grandchild.ID)
	if err != nil {
		t.Fatalf("failed to load leaf stats: %v", err)
	}
	if leaf.TotalDownlines != 0 {
		t.Errorf("leaf downlines = %d, want 0", leaf.TotalDownlines)
	}
}

func TestAdminTierAndStockAdjustments(t *testing.T) {
	env := newTestEnv(t)
	agent := env.registerAgent(t, 1, "")

	if err := env.agentUc.UpdateTier(agent.ID, domain.TierGold); err != nil {
		t.Fatalf("failed to update tier: %v", err)
	}
	if err := env.agentUc.AdjustStock(agent.ID, 7); err != nil {
		t.Fatalf("failed to adjust stock: %v", err)
	}

	reloaded, err := env.agentUc.GetAgentByID(agent.ID)
	if err != nil {
		t.Fatalf("failed to reload agent: %v", err)
	}
	if reloaded.PackageTier != domain.TierGold {
		t.Errorf("tier = %s, want GOLD", reloaded.PackageTier)
	}
	if reloaded.StockBoxes != 7 {
		t.Errorf("stock = %d, want 7", reloaded.StockBoxes)
	}

	if err := env.agentUc.UpdateTier(agent.ID, "BRONZE"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown tier: want ErrValidation, got %v", err)
	}
	if err := env.agentUc.AdjustStock(agent.ID, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero adjustment: want ErrValidation, got %v", err)
	}
}
