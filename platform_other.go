//go:build !linux && !windows && !darwin

package rhfw

const nativePlatformName = "headless"

type nativePlatform = HeadlessPlatform

func newNativePlatform() Platform {
	return NewHeadlessPlatform()
}
