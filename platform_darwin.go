//go:build darwin

package rhfw

const nativePlatformName = "macos"

type nativePlatform = desktopPlatform

func newNativePlatform() Platform {
	return &nativePlatform{name: nativePlatformName}
}
