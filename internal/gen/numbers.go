//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var prn = message.NewPrinter(language.English)

// FmtInt - 1234567 -> "1,234,567"
func FmtInt(n int) string {
	return prn.Sprintf("%d", n)
}

// FmtPct - 0.7512 -> "75.12%"
func FmtPct(f float64) string {
	return prn.Sprintf("%.2f%%", f*100)
}
