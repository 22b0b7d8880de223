package database

import (
	"errors"
	"math"
	"testing"
)

func TestAddMoneyOverflow(t *testing.T) {
	_, err := AddMoney(Money(math.MaxUint64), 1)
	if !errors.Is(err, ErrMoneyOverflow) {
		t.Fatalf("AddMoney(MaxUint64, 1) error = %v; want ErrMoneyOverflow", err)
	}
}

func TestSubMoneyUnderflow(t *testing.T) {
	_, err := SubMoney(5, 6)
	if !errors.Is(err, ErrMoneyUnderflow) {
		t.Fatalf("SubMoney(5, 6) error = %v; want ErrMoneyUnderflow", err)
	}
}

func TestAddSubMoneyHappyPath(t *testing.T) {
	sum, err := AddMoney(10, 5)
	if err != nil || sum != 15 {
		t.Fatalf("AddMoney(10, 5) = %d, %v; want 15, nil", sum, err)
	}
	diff, err := SubMoney(15, 5)
	if err != nil || diff != 10 {
		t.Fatalf("SubMoney(15, 5) = %d, %v; want 10, nil", diff, err)
	}
}
