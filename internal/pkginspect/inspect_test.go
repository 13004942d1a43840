package pkginspect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testUpgradeCode = "{05C2A630-6E2B-44D2-A229-2398AB9BBA24}"

type fakeDatabase struct {
	props      map[string]string
	propsErr   error
	details    map[string]string
	detailErrs map[string]error
	features   map[string]bool
	featureErr error
}

func (f *fakeDatabase) PackageProperties(_ string, names []string) (map[string]string, error) {
	if f.propsErr != nil {
		return nil, f.propsErr
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = f.props[name]
	}
	return out, nil
}

func (f *fakeDatabase) ProductInfo(_ string, field string) (string, error) {
	if err := f.detailErrs[field]; err != nil {
		return "", err
	}
	return f.details[field], nil
}

func (f *fakeDatabase) FeatureEnabled(_ string, feature string) (bool, error) {
	if f.featureErr != nil {
		return false, f.featureErr
	}
	return f.features[feature], nil
}

type fakeRegistry struct {
	products []string
	err      error
}

func (f *fakeRegistry) RelatedProducts(string) ([]string, error) {
	return f.products, f.err
}

func writePackageFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe-agent-7.40.0.msi")
	if err := os.WriteFile(path, []byte("not a real package"), 0o644); err != nil {
		t.Fatalf("write package file: %v", err)
	}
	return path
}

func validProps() map[string]string {
	return map[string]string{
		PropertyProductName:    "Probe Agent",
		PropertyProductVersion: "7.40.0",
		PropertyUpgradeCode:    testUpgradeCode,
	}
}

func TestReadPackageIdentity(t *testing.T) {
	db := &fakeDatabase{props: validProps()}
	identity, err := ReadPackageIdentity(db, writePackageFile(t), []string{testUpgradeCode})
	if err != nil {
		t.Fatalf("ReadPackageIdentity error: %v", err)
	}
	if identity.ProductName != "Probe Agent" {
		t.Fatalf("unexpected product name %q", identity.ProductName)
	}
	if identity.Version != "7.40.0" {
		t.Fatalf("unexpected version %q", identity.Version)
	}
	if identity.UpgradeCode != testUpgradeCode {
		t.Fatalf("unexpected upgrade code %q", identity.UpgradeCode)
	}
}

func TestReadPackageIdentityMissingFile(t *testing.T) {
	db := &fakeDatabase{props: validProps()}
	_, err := ReadPackageIdentity(db, filepath.Join(t.TempDir(), "absent.msi"), []string{testUpgradeCode})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadPackageIdentityDirectory(t *testing.T) {
	db := &fakeDatabase{props: validProps()}
	_, err := ReadPackageIdentity(db, t.TempDir(), []string{testUpgradeCode})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for directory, got %v", err)
	}
}

func TestReadPackageIdentityMissingProperty(t *testing.T) {
	for _, missing := range []string{PropertyProductName, PropertyProductVersion, PropertyUpgradeCode} {
		props := validProps()
		props[missing] = ""
		db := &fakeDatabase{props: props}
		_, err := ReadPackageIdentity(db, writePackageFile(t), []string{testUpgradeCode})
		if !errors.Is(err, ErrInvalidPackage) {
			t.Fatalf("missing %s: expected ErrInvalidPackage, got %v", missing, err)
		}
	}
}

func TestReadPackageIdentityForeignUpgradeCode(t *testing.T) {
	props := validProps()
	props[PropertyUpgradeCode] = "{99999999-9999-9999-9999-999999999999}"
	db := &fakeDatabase{props: props}
	_, err := ReadPackageIdentity(db, writePackageFile(t), []string{testUpgradeCode})
	if !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("expected ErrInvalidPackage for foreign upgrade code, got %v", err)
	}
}

func TestReadPackageIdentityInvalidVersion(t *testing.T) {
	props := validProps()
	props[PropertyProductVersion] = "seven"
	db := &fakeDatabase{props: props}
	_, err := ReadPackageIdentity(db, writePackageFile(t), []string{testUpgradeCode})
	if !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("expected ErrInvalidPackage for bad version, got %v", err)
	}
}

func TestReadPackageIdentityAllowListCaseInsensitive(t *testing.T) {
	props := validProps()
	props[PropertyUpgradeCode] = "{05c2a630-6e2b-44d2-a229-2398ab9bba24}"
	db := &fakeDatabase{props: props}
	identity, err := ReadPackageIdentity(db, writePackageFile(t), []string{testUpgradeCode})
	if err != nil {
		t.Fatalf("ReadPackageIdentity error: %v", err)
	}
	if identity.UpgradeCode != testUpgradeCode {
		t.Fatalf("expected normalized upgrade code, got %q", identity.UpgradeCode)
	}
}

func TestFindExistingInstallationNone(t *testing.T) {
	product, err := FindExistingInstallation(&fakeRegistry{}, &fakeDatabase{}, testUpgradeCode)
	if err != nil {
		t.Fatalf("FindExistingInstallation error: %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}
}

func TestFindExistingInstallationAmbiguous(t *testing.T) {
	registry := &fakeRegistry{products: []string{"{A}", "{B}"}}
	_, err := FindExistingInstallation(registry, &fakeDatabase{}, testUpgradeCode)
	if !errors.Is(err, ErrAmbiguousInstallation) {
		t.Fatalf("expected ErrAmbiguousInstallation, got %v", err)
	}
}

func TestFindExistingInstallationSingle(t *testing.T) {
	registry := &fakeRegistry{products: []string{"{PRODUCT-CODE}"}}
	db := &fakeDatabase{details: map[string]string{
		DetailProductName: "Probe Agent",
		DetailVersion:     "7.39.0",
		DetailPackageName: "probe-agent-7.39.0.msi",
	}}
	product, err := FindExistingInstallation(registry, db, testUpgradeCode)
	if err != nil {
		t.Fatalf("FindExistingInstallation error: %v", err)
	}
	if product.ProductCode != "{PRODUCT-CODE}" {
		t.Fatalf("unexpected product code %q", product.ProductCode)
	}
	if product.Version != "7.39.0" {
		t.Fatalf("unexpected version %q", product.Version)
	}
	if product.PackageFileName != "probe-agent-7.39.0.msi" {
		t.Fatalf("unexpected package file name %q", product.PackageFileName)
	}
}

func TestFindExistingInstallationIncompleteDetail(t *testing.T) {
	for _, field := range []string{DetailProductName, DetailVersion, DetailPackageName} {
		registry := &fakeRegistry{products: []string{"{PRODUCT-CODE}"}}
		db := &fakeDatabase{
			details: map[string]string{
				DetailProductName: "Probe Agent",
				DetailVersion:     "7.39.0",
				DetailPackageName: "probe-agent-7.39.0.msi",
			},
			detailErrs: map[string]error{field: errors.New("registry unreadable")},
		}
		_, err := FindExistingInstallation(registry, db, testUpgradeCode)
		if !errors.Is(err, ErrIncompleteInstallationInfo) {
			t.Fatalf("field %s: expected ErrIncompleteInstallationInfo, got %v", field, err)
		}
	}
}

func TestFindExistingInstallationEmptyDetail(t *testing.T) {
	registry := &fakeRegistry{products: []string{"{PRODUCT-CODE}"}}
	db := &fakeDatabase{details: map[string]string{
		DetailProductName: "Probe Agent",
		DetailVersion:     "7.39.0",
	}}
	_, err := FindExistingInstallation(registry, db, testUpgradeCode)
	if !errors.Is(err, ErrIncompleteInstallationInfo) {
		t.Fatalf("expected ErrIncompleteInstallationInfo for empty detail, got %v", err)
	}
}

func TestReadFeatureStates(t *testing.T) {
	db := &fakeDatabase{features: map[string]bool{
		"NetworkTests":      false,
		"ChromeIntegration": true,
	}}
	recognized := []string{"NetworkTests", "ChromeIntegration", "EdgeIntegration"}
	states, err := ReadFeatureStates(db, "{PRODUCT-CODE}", recognized)
	if err != nil {
		t.Fatalf("ReadFeatureStates error: %v", err)
	}
	want := map[string]bool{"NetworkTests": false, "ChromeIntegration": true, "EdgeIntegration": false}
	if len(states) != len(want) {
		t.Fatalf("expected %d states, got %v", len(want), states)
	}
	for name, enabled := range want {
		if states[name] != enabled {
			t.Fatalf("feature %s: expected %v, got %v", name, enabled, states[name])
		}
	}
}

func TestReadFeatureStatesNoProduct(t *testing.T) {
	states, err := ReadFeatureStates(&fakeDatabase{}, "", []string{"NetworkTests"})
	if err != nil {
		t.Fatalf("ReadFeatureStates error: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected empty mapping, got %v", states)
	}
}
