//go:build linux

package rhfw

const nativePlatformName = "linux"

type nativePlatform = desktopPlatform

func newNativePlatform() Platform {
	return &nativePlatform{name: nativePlatformName}
}
