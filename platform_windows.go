//go:build windows

package rhfw

const nativePlatformName = "windows"

type nativePlatform = desktopPlatform

func newNativePlatform() Platform {
	return &nativePlatform{name: nativePlatformName}
}
