package model

import "github.com/shopspring/decimal"

const satoshiExp = -8

// SatoshisToDecimal converts an amount in the smallest unit to coins for display.
func SatoshisToDecimal(sat int64) decimal.Decimal {
	return decimal.New(sat, satoshiExp)
}

// DecimalToSatoshis converts a coin amount to the smallest unit, truncating below one satoshi.
func DecimalToSatoshis(v decimal.Decimal) int64 {
	return v.Shift(-satoshiExp).IntPart()
}
