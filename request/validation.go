// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

type validationKind int

const (
	validateNone validationKind = iota
	validateSuccess
	validateSuccessAndRedirect
	validateCustom
)

// A ValidationPolicy decides which response status codes the execution
// engine accepts. The zero value performs no validation.
type ValidationPolicy struct {
	kind  validationKind
	codes map[int]struct{}
}

// ValidateNone returns the policy that accepts every status code.
func ValidateNone() ValidationPolicy {
	return ValidationPolicy{kind: validateNone}
}

// ValidateSuccess returns the policy that accepts 200-299.
func ValidateSuccess() ValidationPolicy {
	return ValidationPolicy{kind: validateSuccess}
}

// ValidateSuccessAndRedirects returns the policy that accepts 200-399.
func ValidateSuccessAndRedirects() ValidationPolicy {
	return ValidationPolicy{kind: validateSuccessAndRedirect}
}

// ValidateCustom returns the policy that accepts exactly the given
// status codes.
func ValidateCustom(codes ...int) ValidationPolicy {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return ValidationPolicy{kind: validateCustom, codes: set}
}

// IsNone reports whether the policy performs no validation.
func (p ValidationPolicy) IsNone() bool {
	return p.kind == validateNone
}

// Accepts reports whether the policy accepts the given status code.
// The none policy accepts everything.
func (p ValidationPolicy) Accepts(status int) bool {
	switch p.kind {
	case validateSuccess:
		return status >= 200 && status <= 299
	case validateSuccessAndRedirect:
		return status >= 200 && status <= 399
	case validateCustom:
		_, ok := p.codes[status]
		return ok
	default:
		return true
	}
}
