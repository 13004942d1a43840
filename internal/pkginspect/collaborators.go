package pkginspect

// Detail field names accepted by PackageDatabase.ProductInfo. They mirror the
// platform installer's product info property names.
const (
	// DetailProductName is the display name recorded for an installed product.
	DetailProductName = "InstalledProductName"
	// DetailVersion is the installed product's version string.
	DetailVersion = "VersionString"
	// DetailPackageName is the file name of the package the product was installed from.
	DetailPackageName = "PackageName"
)

// Property names read from a package file's property table.
const (
	PropertyProductName    = "ProductName"
	PropertyProductVersion = "ProductVersion"
	PropertyUpgradeCode    = "UpgradeCode"
)

// PackageDatabase reads identity and feature data from the platform's
// installer database. This interface is intentionally narrow so the
// reconciliation core can be tested against synthetic states without a real
// package file or host installation.
type PackageDatabase interface {
	// PackageProperties returns the named property table values for a package file.
	// Absent properties are returned as empty strings.
	PackageProperties(path string, names []string) (map[string]string, error)
	// ProductInfo returns one detail field for an installed product.
	ProductInfo(productCode string, field string) (string, error)
	// FeatureEnabled reports whether a feature is installed locally for a product.
	FeatureEnabled(productCode string, feature string) (bool, error)
}

// ProductRegistry enumerates installed products by upgrade identity.
type ProductRegistry interface {
	// RelatedProducts returns the product codes registered for an upgrade code.
	RelatedProducts(upgradeCode string) ([]string, error)
}
