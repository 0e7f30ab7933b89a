package engine

import (
	"testing"

	"finplan/internal/model"
)

func TestSafety_WorkedExample(t *testing.T) {
	cfg := testConfig(t)

	if got := TotalBalance(cfg.Accounts); !got.Equal(dec(t, "3450")) {
		t.Errorf("TotalBalance = %s, want 3450", got)
	}
	if got := MinimumReserve(cfg.Accounts); !got.Equal(dec(t, "500")) {
		t.Errorf("MinimumReserve = %s, want 500", got)
	}
	if got := SafetyBuffer(cfg.Accounts, cfg.Settings.Cushion); !got.Equal(dec(t, "700")) {
		t.Errorf("SafetyBuffer = %s, want 700 (500 reserve + 200 cushion)", got)
	}
	if got := AvailableFunds(cfg.Accounts, cfg.Settings.Cushion); !got.Equal(dec(t, "2750")) {
		t.Errorf("AvailableFunds = %s, want 2750", got)
	}
}

func TestAvailableFunds_NegativeIsData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Accounts[0].Balance = dec(t, "550")

	got := AvailableFunds(cfg.Accounts, cfg.Settings.Cushion)
	if !got.Equal(dec(t, "300")) {
		t.Fatalf("AvailableFunds = %s, want 300", got)
	}

	cfg.Accounts[0].Balance = dec(t, "100")
	got = AvailableFunds(cfg.Accounts, cfg.Settings.Cushion)
	if !got.IsNegative() || !got.Equal(dec(t, "-150")) {
		t.Errorf("AvailableFunds = %s, want -150 (reported, never an error)", got)
	}
}

func TestEmergencyFund_SavingsOnly(t *testing.T) {
	cfg := testConfig(t)
	if got := EmergencyFund(cfg.Accounts); !got.Equal(dec(t, "450")) {
		t.Errorf("EmergencyFund = %s, want 450 (savings balance only)", got)
	}

	cfg.Accounts = append(cfg.Accounts, model.Account{
		ID: "cash", Name: "Cash", Type: model.AccountCash, Balance: dec(t, "75"),
	})
	if got := EmergencyFund(cfg.Accounts); !got.Equal(dec(t, "450")) {
		t.Errorf("EmergencyFund = %s after adding cash, want 450 unchanged", got)
	}
}
