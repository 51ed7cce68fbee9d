// Package language holds the language codes the XTTS v2 checkpoint was
// trained on. Codes are matched exactly; there is no normalization.
package language

var codes = []string{
	"en", "es", "fr", "de", "it", "pt", "pl", "tr", "ru",
	"nl", "cs", "ar", "zh-cn", "hu", "ko", "ja", "hi",
}

var supported = make(map[string]struct{}, len(codes))

func init() {
	for _, c := range codes {
		supported[c] = struct{}{}
	}
}

// Supported reports whether code is one of the trained language codes.
func Supported(code string) bool {
	_, ok := supported[code]
	return ok
}

// Codes returns the trained language codes in canonical order.
func Codes() []string {
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}
