package validation

import "mime/multipart"

// MaxImagesPerProduct caps how many images one upload may carry.
const MaxImagesPerProduct = 5

// allowedImageTypes lists the accepted upload mimetypes.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// CheckImageFiles validates the uploaded image descriptors: at least one
// file, at most MaxImagesPerProduct, each non-empty and of an accepted type.
func CheckImageFiles(files []*multipart.FileHeader) Errors {
	if len(files) == 0 {
		return Errors{"imageUrl": "Image is required"}
	}
	if len(files) > MaxImagesPerProduct {
		return Errors{"imageUrl": "A maximum of 5 images is allowed"}
	}
	for _, file := range files {
		if file.Filename == "" || file.Size == 0 {
			return Errors{"imageUrl": "Invalid image data"}
		}
		if _, ok := allowedImageTypes[file.Header.Get("Content-Type")]; !ok {
			return Errors{"imageUrl": "Invalid image type, only jpeg, png, or gif are allowed"}
		}
	}
	return nil
}

// CheckProductForm parses and validates a multipart product body in one go.
// Parse failures (non-numeric price or rating) take precedence over the
// rule messages for the same field.
func (v *Validator) CheckProductForm(values map[string][]string) (*ProductRequest, Errors) {
	req, parseErrs := ParseProductForm(values)
	errs := v.CheckProduct(req)
	if len(parseErrs) == 0 {
		return req, errs
	}
	if errs == nil {
		errs = make(Errors)
	}
	for field, msg := range parseErrs {
		errs[field] = msg
	}
	return req, errs
}

// CheckListQueryParams parses and validates listing query parameters.
func (v *Validator) CheckListQueryParams(queries map[string]string) (*ListQuery, Errors) {
	q, parseErrs := ParseListQuery(queries)
	errs := v.CheckListQuery(q)
	if len(parseErrs) == 0 {
		return q, errs
	}
	if errs == nil {
		errs = make(Errors)
	}
	for field, msg := range parseErrs {
		errs[field] = msg
	}
	return q, errs
}
