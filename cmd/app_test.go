package cmd

import (
	"flag"
	"testing"

	"github.com/tmaury/fincoach"
)

func TestApplyOverrides(t *testing.T) {
	sc := fincoach.NewScenario(fincoach.DebtPayoff, "", 12)
	if err := applyOverrides(sc, []string{"extraMonthlyPayment=350"}); err != nil {
		t.Fatal(err)
	}
	if v, _ := sc.Assumptions.Get(fincoach.KeyExtraMonthlyPayment); v != 350 {
		t.Errorf("extraMonthlyPayment = %v, want 350", v)
	}

	if err := applyOverrides(sc, []string{"annualReturnRate=7"}); err == nil {
		t.Error("expected an error for a key the scenario type does not have")
	}
	if err := applyOverrides(sc, []string{"noequalsign"}); err == nil {
		t.Error("expected an error for a malformed argument")
	}
	if err := applyOverrides(sc, []string{"extraMonthlyPayment=abc"}); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
}

func TestMergeFlagChanges(t *testing.T) {
	c := &whatifCmd{}
	f := flag.NewFlagSet("whatif", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-income", "750"}); err != nil {
		t.Fatal(err)
	}

	fromFile := fincoach.WhatIfChanges{IncomeChange: 100, ExtraDebtPayment: 200, TimeframeMonths: 24}
	mergeFlagChanges(&fromFile, c.changes, f)

	if fromFile.IncomeChange != 750 {
		t.Errorf("IncomeChange = %v, want the flag value 750", fromFile.IncomeChange)
	}
	if fromFile.ExtraDebtPayment != 200 {
		t.Errorf("ExtraDebtPayment = %v, want the file value 200", fromFile.ExtraDebtPayment)
	}
	if fromFile.TimeframeMonths != 24 {
		t.Errorf("TimeframeMonths = %v, want the file value 24", fromFile.TimeframeMonths)
	}
}
