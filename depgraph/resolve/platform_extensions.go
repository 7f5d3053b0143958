package resolve

import "strings"

// PlatformExtensions expands platforms × extensions into platform-qualified
// extensions (platform-major order) followed by the bare extensions.
//
//	PlatformExtensions([ios android], [js ts]) = [ios.js ios.ts android.js android.ts js ts]
func PlatformExtensions(platforms, extensions []string) []string {
	qualified := make([]string, 0, (len(platforms)+1)*len(extensions))
	for _, platform := range platforms {
		for _, ext := range extensions {
			qualified = append(qualified, platform+"."+strings.TrimPrefix(ext, "."))
		}
	}
	for _, ext := range extensions {
		qualified = append(qualified, strings.TrimPrefix(ext, "."))
	}
	return qualified
}
