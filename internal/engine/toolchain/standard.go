package toolchain

import (
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
)

func gnuStandard(lang domain.Language) string {
	if lang.IsCXX() {
		if lang.Standard == domain.StandardLatest {
			return "-std=c++2c"
		}
		return "-std=c++" + lang.Standard.String()
	}
	if lang.Standard == domain.StandardLatest {
		return "-std=c2x"
	}
	return "-std=c" + lang.Standard.String()
}

// msvcStandard maps a revision onto the /std: values cl.exe understands.
// cl.exe has no switch below C++14 or C11; those requests are raised with a warning.
func msvcStandard(lang domain.Language) (string, string) {
	std := lang.Standard
	if lang.IsCXX() {
		switch {
		case std == domain.StandardLatest:
			return "/std:c++latest", ""
		case std.Before(14):
			return "/std:c++14", fmt.Sprintf("MSVC does not support C++%s, building as C++14", std)
		case std.Before(23):
			return "/std:c++" + std.String(), ""
		default:
			return "/std:c++latest", fmt.Sprintf("MSVC has no dedicated C++%s switch, building as c++latest", std)
		}
	}

	switch {
	case std == domain.StandardLatest:
		return "/std:clatest", ""
	case std.Before(11):
		return "/std:c11", fmt.Sprintf("MSVC does not support C%s, building as C11", std)
	case std.Before(23):
		return "/std:c" + std.String(), ""
	default:
		return "/std:clatest", fmt.Sprintf("MSVC has no dedicated C%s switch, building as clatest", std)
	}
}
