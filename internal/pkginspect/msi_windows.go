//go:build windows

package pkginspect

import (
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 installer API constants.
const (
	msiOpenPackageFlagsIgnoreMachineState = 1
	installUILevelNone                    = 2
	installStateLocal                     = 3

	errnoMoreData    = 234
	errnoNoMoreItems = 259
	errnoUnknownProp = 1608

	// Product codes are GUIDs in registry format: 38 chars plus the terminator.
	productCodeChars = 39
)

var (
	msiDLL = windows.NewLazySystemDLL("msi.dll")

	procMsiSetInternalUI       = msiDLL.NewProc("MsiSetInternalUI")
	procMsiOpenPackageEx       = msiDLL.NewProc("MsiOpenPackageExW")
	procMsiGetProperty         = msiDLL.NewProc("MsiGetPropertyW")
	procMsiCloseHandle         = msiDLL.NewProc("MsiCloseHandle")
	procMsiEnumRelatedProducts = msiDLL.NewProc("MsiEnumRelatedProductsW")
	procMsiGetProductInfo      = msiDLL.NewProc("MsiGetProductInfoW")
	procMsiQueryFeatureState   = msiDLL.NewProc("MsiQueryFeatureStateW")
)

// msiSystem implements PackageDatabase and ProductRegistry on top of msi.dll.
type msiSystem struct{}

// NewPlatform returns the installer database collaborators for this host.
func NewPlatform() (PackageDatabase, ProductRegistry, error) {
	system := &msiSystem{}
	return system, system, nil
}

// PackageProperties opens the package without touching machine state and reads
// the named properties from its property table.
func (*msiSystem) PackageProperties(path string, names []string) (map[string]string, error) {
	// Suppress any installer UI for the lifetime of the process.
	_, _, _ = procMsiSetInternalUI.Call(uintptr(installUILevelNone), 0)

	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	var handle uintptr
	ret, _, _ := procMsiOpenPackageEx.Call(
		uintptr(unsafe.Pointer(pathPtr)),
		uintptr(msiOpenPackageFlagsIgnoreMachineState),
		uintptr(unsafe.Pointer(&handle)),
	)
	if ret != 0 {
		return nil, fmt.Errorf("MsiOpenPackageEx(%s): %w", path, syscall.Errno(ret))
	}
	defer func() {
		_, _, _ = procMsiCloseHandle.Call(handle)
	}()

	props := make(map[string]string, len(names))
	for _, name := range names {
		value, err := getProperty(handle, name)
		if err != nil {
			return nil, err
		}
		props[name] = value
	}
	return props, nil
}

// ProductInfo reads one product info field for an installed product.
func (*msiSystem) ProductInfo(productCode string, field string) (string, error) {
	codePtr, err := windows.UTF16PtrFromString(productCode)
	if err != nil {
		return "", err
	}
	fieldPtr, err := windows.UTF16PtrFromString(field)
	if err != nil {
		return "", err
	}

	size := uint32(256)
	for {
		buf := make([]uint16, size)
		// The size argument counts characters excluding the terminator on
		// input and output, hence the +1 dance on ERROR_MORE_DATA.
		call := size
		ret, _, _ := procMsiGetProductInfo.Call(
			uintptr(unsafe.Pointer(codePtr)),
			uintptr(unsafe.Pointer(fieldPtr)),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(unsafe.Pointer(&call)),
		)
		switch ret {
		case 0:
			return windows.UTF16ToString(buf[:call]), nil
		case errnoMoreData:
			size = call + 1
			continue
		default:
			return "", fmt.Errorf("MsiGetProductInfo(%s, %s): %w", productCode, field, syscall.Errno(ret))
		}
	}
}

// FeatureEnabled reports whether the feature is installed locally.
func (*msiSystem) FeatureEnabled(productCode string, feature string) (bool, error) {
	codePtr, err := windows.UTF16PtrFromString(productCode)
	if err != nil {
		return false, err
	}
	featurePtr, err := windows.UTF16PtrFromString(feature)
	if err != nil {
		return false, err
	}
	state, _, _ := procMsiQueryFeatureState.Call(
		uintptr(unsafe.Pointer(codePtr)),
		uintptr(unsafe.Pointer(featurePtr)),
	)
	// Any state other than local (absent, advertised, bad configuration)
	// collapses to disabled.
	return int32(state) == installStateLocal, nil
}

// RelatedProducts enumerates product codes registered under upgradeCode.
func (*msiSystem) RelatedProducts(upgradeCode string) ([]string, error) {
	codePtr, err := windows.UTF16PtrFromString(strings.ToUpper(upgradeCode))
	if err != nil {
		return nil, err
	}

	var products []string
	for index := uint32(0); ; index++ {
		buf := make([]uint16, productCodeChars)
		ret, _, _ := procMsiEnumRelatedProducts.Call(
			uintptr(unsafe.Pointer(codePtr)),
			0,
			uintptr(index),
			uintptr(unsafe.Pointer(&buf[0])),
		)
		switch ret {
		case 0:
			products = append(products, windows.UTF16ToString(buf))
		case errnoNoMoreItems:
			return products, nil
		default:
			return nil, fmt.Errorf("MsiEnumRelatedProducts(%s): %w", upgradeCode, syscall.Errno(ret))
		}
	}
}

// getProperty reads one property from an open package handle, growing the
// buffer on ERROR_MORE_DATA. Unknown properties read as empty strings.
func getProperty(handle uintptr, name string) (string, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return "", err
	}
	size := uint32(256)
	for {
		buf := make([]uint16, size)
		call := size
		ret, _, _ := procMsiGetProperty.Call(
			handle,
			uintptr(unsafe.Pointer(namePtr)),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(unsafe.Pointer(&call)),
		)
		switch ret {
		case 0:
			return windows.UTF16ToString(buf[:call]), nil
		case errnoMoreData:
			size = call + 1
			continue
		case errnoUnknownProp:
			return "", nil
		default:
			return "", fmt.Errorf("MsiGetProperty(%s): %w", name, syscall.Errno(ret))
		}
	}
}
