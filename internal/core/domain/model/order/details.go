package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"cargo/internal/pkg/errs"
)

const (
	MinQuantity = 1
	MaxQuantity = 10000

	maxProductURLLength  = 2048
	maxProductNameLength = 300
	maxFreeTextLength    = 2000
)

// ProductDetails describes what the customer asks to have purchased. Optional
// fields are kept as trimmed strings; empty means "not provided".
type ProductDetails struct {
	productURL     string
	productName    string
	quantity       int
	variation      string
	specifications string
	notes          string
	screenshotRef  string
}

// NewProductDetails validates and normalizes the request fields. All field
// failures are reported together.
func NewProductDetails(
	productURL, productName string,
	quantity int,
	variation, specifications, notes, screenshotRef string,
) (ProductDetails, error) {
	d := ProductDetails{
		variation:      strings.TrimSpace(variation),
		specifications: strings.TrimSpace(specifications),
		notes:          strings.TrimSpace(notes),
		screenshotRef:  strings.TrimSpace(screenshotRef),
	}

	if err := errors.Join(
		d.setProductURL(productURL),
		d.setProductName(productName),
		d.setQuantity(quantity),
		checkLength("variation", d.variation, maxFreeTextLength),
		checkLength("specifications", d.specifications, maxFreeTextLength),
		checkLength("notes", d.notes, maxFreeTextLength),
		checkLength("screenshotRef", d.screenshotRef, maxProductURLLength),
	); err != nil {
		return ProductDetails{}, err
	}
	return d, nil
}

func (d ProductDetails) ProductURL() string     { return d.productURL }
func (d ProductDetails) ProductName() string    { return d.productName }
func (d ProductDetails) Quantity() int          { return d.quantity }
func (d ProductDetails) Variation() string      { return d.variation }
func (d ProductDetails) Specifications() string { return d.specifications }
func (d ProductDetails) Notes() string          { return d.notes }
func (d ProductDetails) ScreenshotRef() string  { return d.screenshotRef }

// Validate fails for the zero value, which has no product name.
func (d ProductDetails) Validate() error {
	if d.productName == "" || d.productURL == "" || d.quantity < MinQuantity {
		return errs.NewValueIsRequiredError("details")
	}
	return nil
}

func (d *ProductDetails) setProductURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errs.NewValueIsRequiredError("productUrl")
	}
	if err := checkLength("productUrl", raw, maxProductURLLength); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("productUrl", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errs.NewValueIsInvalidErrorWithCause("productUrl", fmt.Errorf("scheme %q is not http or https", u.Scheme))
	}
	if u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("productUrl", errors.New("host is missing"))
	}
	d.productURL = raw
	return nil
}

func (d *ProductDetails) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if err := checkLength("productName", name, maxProductNameLength); err != nil {
		return err
	}
	d.productName = name
	return nil
}

func (d *ProductDetails) setQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	d.quantity = quantity
	return nil
}

func checkLength(paramName, value string, maxLength int) error {
	if n := utf8.RuneCountInString(value); n > maxLength {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d characters exceed the limit of %d", n, maxLength))
	}
	return nil
}
