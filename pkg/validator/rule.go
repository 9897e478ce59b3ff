package validator

import (
	"context"
	"fmt"
)

type RuleKind int

const (
	KindRequired RuleKind = iota
	KindNullable
	KindString
	KindEmail
	KindNumeric
	KindBetween
	KindMin
	KindMax
	KindDigits
	KindDigitsBetween
	KindOneOf
	KindSame
	KindUnique
	KindCustom
	KindImage
)

// CheckFunc is a look-aside predicate used by Unique and Custom rules.
type CheckFunc func(ctx context.Context, value string) (bool, error)

// Rule is a single typed check. Min and Max carry lengths, digit counts or
// kilobytes depending on Kind.
type Rule struct {
	Kind    RuleKind
	Min     int
	Max     int
	Field   string
	Options []string
	Check   CheckFunc
	Message string
}

func (r Rule) message(field, format string) string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf(format, field)
}

func Required() Rule { return Rule{Kind: KindRequired} }

// Nullable documents that an absent value is accepted.
func Nullable() Rule { return Rule{Kind: KindNullable} }

func String() Rule  { return Rule{Kind: KindString} }
func Email() Rule   { return Rule{Kind: KindEmail} }
func Numeric() Rule { return Rule{Kind: KindNumeric} }

func Between(min, max int) Rule { return Rule{Kind: KindBetween, Min: min, Max: max} }
func Min(n int) Rule            { return Rule{Kind: KindMin, Min: n} }
func Max(n int) Rule            { return Rule{Kind: KindMax, Max: n} }

func Digits(n int) Rule { return Rule{Kind: KindDigits, Min: n} }

func DigitsBetween(min, max int) Rule { return Rule{Kind: KindDigitsBetween, Min: min, Max: max} }

func OneOf(options ...string) Rule { return Rule{Kind: KindOneOf, Options: options} }

// Same requires the value to equal the value of another field.
func Same(field string) Rule { return Rule{Kind: KindSame, Field: field} }

// Unique fails when taken reports the value is already used.
func Unique(taken CheckFunc) Rule { return Rule{Kind: KindUnique, Check: taken} }

// Custom fails with message when ok returns false.
func Custom(ok CheckFunc, message string) Rule {
	return Rule{Kind: KindCustom, Check: ok, Message: message}
}

// Image accepts uploads whose sniffed type matches one of exts and whose
// size does not exceed maxKB.
func Image(maxKB int, exts ...string) Rule {
	return Rule{Kind: KindImage, Max: maxKB, Options: exts}
}
