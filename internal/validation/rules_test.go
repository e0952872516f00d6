package validation_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"katalog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductValues() map[string][]string {
	return map[string][]string{
		"productName":    {"Red Chair"},
		"description":    {"A red chair"},
		"productDetails": {"Solid oak, painted red"},
		"price":          {"49.99"},
		"color":          {"#ff0000"},
		"categoryId":     {"1", "2"},
	}
}

func TestCheckProductForm_Valid(t *testing.T) {
	v := validation.New()

	req, errs := v.CheckProductForm(validProductValues())

	assert.Nil(t, errs)
	assert.Equal(t, "Red Chair", req.ProductName)
	assert.Equal(t, 49.99, req.Price)
	assert.Equal(t, []string{"1", "2"}, req.CategoryIDs)
	assert.Nil(t, req.Rating)
	assert.Nil(t, req.Brand)
}

func TestCheckProductForm_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(values map[string][]string)
		field   string
		message string
	}{
		{
			name:    "missing product name",
			mutate:  func(v map[string][]string) { delete(v, "productName") },
			field:   "productName",
			message: "Product name is required",
		},
		{
			name:    "empty product name",
			mutate:  func(v map[string][]string) { v["productName"] = []string{""} },
			field:   "productName",
			message: "Product name is required",
		},
		{
			name:    "description too long",
			mutate:  func(v map[string][]string) { v["description"] = []string{strings.Repeat("x", 256)} },
			field:   "description",
			message: "Description length should not exceed 255 characters",
		},
		{
			name:    "missing product details",
			mutate:  func(v map[string][]string) { delete(v, "productDetails") },
			field:   "productDetails",
			message: "Product details are required",
		},
		{
			name:    "missing price",
			mutate:  func(v map[string][]string) { delete(v, "price") },
			field:   "price",
			message: "Price is required",
		},
		{
			name:    "price not a number",
			mutate:  func(v map[string][]string) { v["price"] = []string{"cheap"} },
			field:   "price",
			message: "Price should be a number",
		},
		{
			name:    "negative price",
			mutate:  func(v map[string][]string) { v["price"] = []string{"-5"} },
			field:   "price",
			message: "Price should be a positive number",
		},
		{
			name:    "missing color",
			mutate:  func(v map[string][]string) { delete(v, "color") },
			field:   "color",
			message: "Color is required",
		},
		{
			name:    "negative rating",
			mutate:  func(v map[string][]string) { v["rating"] = []string{"-1"} },
			field:   "rating",
			message: "Rating should be a positive number",
		},
		{
			name:    "missing category id",
			mutate:  func(v map[string][]string) { delete(v, "categoryId") },
			field:   "categoryId",
			message: "Category Id is required",
		},
		{
			name:    "non-numeric category id",
			mutate:  func(v map[string][]string) { v["categoryId"] = []string{"1", "abc"} },
			field:   "categoryId",
			message: "Category Id must be in integer format",
		},
	}

	v := validation.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validProductValues()
			tt.mutate(values)

			_, errs := v.CheckProductForm(values)

			require.NotNil(t, errs)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestCheckProductForm_ColorPattern(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#A1B2C3", true},
		{"#ffffff", true},
		{"#zzzzzz", false},
		{"#fff", false},
		{"ffffff", false},
		{"#ffffff0", false},
	}

	v := validation.New()
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			values := validProductValues()
			values["color"] = []string{tt.color}

			_, errs := v.CheckProductForm(values)

			if tt.valid {
				assert.Nil(t, errs)
			} else {
				require.NotNil(t, errs)
				assert.Equal(t, "Color should be in hexadecimal format like #ffffff", errs["color"])
			}
		})
	}
}

func TestCheckProductForm_SingleCategoryID(t *testing.T) {
	v := validation.New()
	values := validProductValues()
	values["categoryId"] = []string{"7"}

	req, errs := v.CheckProductForm(values)

	assert.Nil(t, errs)
	assert.Equal(t, []string{"7"}, req.CategoryIDs)
}

func TestCheckProductForm_OptionalFields(t *testing.T) {
	v := validation.New()
	values := validProductValues()
	values["rating"] = []string{"4.5"}
	values["reviews"] = []string{"Great chair"}
	values["brand"] = []string{"Oakworks"}

	req, errs := v.CheckProductForm(values)

	assert.Nil(t, errs)
	require.NotNil(t, req.Rating)
	assert.Equal(t, 4.5, *req.Rating)
	require.NotNil(t, req.Reviews)
	assert.Equal(t, "Great chair", *req.Reviews)
	require.NotNil(t, req.Brand)
	assert.Equal(t, "Oakworks", *req.Brand)
}

func TestCheckListQueryParams(t *testing.T) {
	tests := []struct {
		name    string
		queries map[string]string
		field   string
		message string
	}{
		{
			name:    "all valid",
			queries: map[string]string{"search": "chair", "page": "2", "limit": "5", "sortBy": "price", "sortOrder": "desc"},
		},
		{
			name:    "empty is valid",
			queries: map[string]string{},
		},
		{
			name:    "page not an integer",
			queries: map[string]string{"page": "two"},
			field:   "page",
			message: "Page number must be an integer",
		},
		{
			name:    "page not positive",
			queries: map[string]string{"page": "0"},
			field:   "page",
			message: "Page number must be a positive integer",
		},
		{
			name:    "limit not positive",
			queries: map[string]string{"limit": "-3"},
			field:   "limit",
			message: "Limit must be a positive integer",
		},
		{
			name:    "bad sort order",
			queries: map[string]string{"sortOrder": "sideways"},
			field:   "sortOrder",
			message: "SortOrder must be either 'asc' or 'desc'",
		},
		{
			name:    "search too long",
			queries: map[string]string{"search": strings.Repeat("s", 256)},
			field:   "search",
			message: "Search query length should not exceed 255 characters",
		},
	}

	v := validation.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := v.CheckListQueryParams(tt.queries)

			if tt.field == "" {
				assert.Nil(t, errs)
			} else {
				require.NotNil(t, errs)
				assert.Equal(t, tt.message, errs[tt.field])
			}
		})
	}
}

func TestCheckProductID(t *testing.T) {
	v := validation.New()

	assert.Nil(t, v.CheckProductID("prod-1"))

	errs := v.CheckProductID("  ")
	require.NotNil(t, errs)
	assert.Equal(t, "Product ID is required", errs["id"])
}

// fileHeaders builds real multipart file headers with the given content types.
func fileHeaders(t *testing.T, contentTypes ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, contentType := range contentTypes {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageUrl"; filename="image-%d.png"`, i))
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really an image"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["imageUrl"]
}

func TestCheckImageFiles(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		errs := validation.CheckImageFiles(nil)
		require.NotNil(t, errs)
		assert.Equal(t, "Image is required", errs["imageUrl"])
	})

	t.Run("accepted types", func(t *testing.T) {
		files := fileHeaders(t, "image/jpeg", "image/png", "image/gif")
		assert.Nil(t, validation.CheckImageFiles(files))
	})

	t.Run("rejected type", func(t *testing.T) {
		files := fileHeaders(t, "image/png", "application/pdf")
		errs := validation.CheckImageFiles(files)
		require.NotNil(t, errs)
		assert.Equal(t, "Invalid image type, only jpeg, png, or gif are allowed", errs["imageUrl"])
	})

	t.Run("too many files", func(t *testing.T) {
		files := fileHeaders(t, "image/png", "image/png", "image/png", "image/png", "image/png", "image/png")
		errs := validation.CheckImageFiles(files)
		require.NotNil(t, errs)
		assert.Equal(t, "A maximum of 5 images is allowed", errs["imageUrl"])
	})
}
