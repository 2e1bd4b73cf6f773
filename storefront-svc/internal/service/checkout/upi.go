package checkout

import (
	"fmt"
	"net/url"
	"strings"
)

type Payee struct {
	Address string
	Name    string
	Note    string
}

var DefaultPayee = Payee{
	Address: "foodie@upi",
	Name:    "Foodie Restaurant",
	Note:    "Food Order Payment",
}

var upiSchemes = map[string]string{
	"gpay":    "tez://upi/pay",
	"phonepe": "phonepe://pay",
}

// DeepLink builds the UPI intent for app. Apps without a dedicated scheme
// get the generic upi://pay link.
func DeepLink(app string, payee Payee, amountPaise int64) string {
	base, ok := upiSchemes[strings.ToLower(app)]
	if !ok {
		base = "upi://pay"
	}
	return fmt.Sprintf("%s?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		base,
		strings.ReplaceAll(encodeComponent(payee.Address), "%40", "@"),
		encodeComponent(payee.Name),
		FormatAmount(amountPaise),
		encodeComponent(payee.Note),
	)
}

// FormatAmount renders paise as rupees with two decimals.
func FormatAmount(paise int64) string {
	if paise < 0 {
		paise = 0
	}
	return fmt.Sprintf("%d.%02d", paise/100, paise%100)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
