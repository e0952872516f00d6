package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to the first failing rule's message for that field.
type Errors map[string]string

// ProductRequest is the validated body of a create or update call. Category
// ids arrive either as a single value or as a repeated field; the form parser
// normalizes both shapes into the ordered CategoryIDs slice.
type ProductRequest struct {
	ProductName    string   `json:"productName" validate:"required"`
	Description    string   `json:"description" validate:"required,max=255"`
	ProductDetails string   `json:"productDetails" validate:"required,max=255"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	Color          string   `json:"color" validate:"required,hexcolor6"`
	Rating         *float64 `json:"rating" validate:"omitempty,gt=0"`
	Reviews        *string  `json:"reviews"`
	Brand          *string  `json:"brand"`
	CategoryIDs    []string `json:"categoryId" validate:"required,min=1,dive,required,numericid"`
}

// ListQuery holds the validated query parameters of the listing endpoint.
type ListQuery struct {
	Search    string `json:"search" validate:"omitempty,max=255"`
	Page      int    `json:"page" validate:"omitempty,gt=0"`
	Limit     int    `json:"limit" validate:"omitempty,gt=0"`
	SortBy    string `json:"sortBy" validate:"omitempty,max=255"`
	SortOrder string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	numericIDPattern = regexp.MustCompile(`^[0-9]+$`)
)

// messages catalogs every field rule's human message, keyed "field.tag".
// Keeping them in one place keeps the contract testable without handlers.
var messages = map[string]string{
	"productName.required":    "Product name is required",
	"description.required":    "Description is required",
	"description.max":         "Description length should not exceed 255 characters",
	"productDetails.required": "Product details are required",
	"productDetails.max":      "Product details length should not exceed 255 characters",
	"price.required":          "Price is required",
	"price.gt":                "Price should be a positive number",
	"color.required":          "Color is required",
	"color.hexcolor6":         "Color should be in hexadecimal format like #ffffff",
	"rating.gt":               "Rating should be a positive number",
	"categoryId.required":     "Category Id is required",
	"categoryId.min":          "At least one Category Id is required",
	"categoryId.numericid":    "Category Id must be in integer format",
	"search.max":              "Search query length should not exceed 255 characters",
	"page.gt":                 "Page number must be a positive integer",
	"limit.gt":                "Limit must be a positive integer",
	"sortBy.max":              "SortBy field length should not exceed 255 characters",
	"sortOrder.oneof":         "SortOrder must be either 'asc' or 'desc'",
}

// Validator wraps a validator.Validate instance with the catalog's custom
// rules registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the hexcolor6 and numericid rules registered
// and field names resolved from json tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// hexcolor6 requires the full #RRGGBB form; the builtin hexcolor rule
	// also accepts the short #RGB form, which the contract rejects.
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("numericid", func(fl validator.FieldLevel) bool {
		return numericIDPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// CheckProduct validates a parsed product body, returning nil when valid.
func (v *Validator) CheckProduct(req *ProductRequest) Errors {
	return v.collect(v.validate.Struct(req))
}

// CheckListQuery validates parsed listing query parameters.
func (v *Validator) CheckListQuery(q *ListQuery) Errors {
	return v.collect(v.validate.Struct(q))
}

// CheckProductID validates the id path parameter.
func (v *Validator) CheckProductID(id string) Errors {
	if strings.TrimSpace(id) == "" {
		return Errors{"id": "Product ID is required"}
	}
	return nil
}

// collect translates validator errors into the message catalog, keeping the
// first failing rule per field.
func (v *Validator) collect(err error) Errors {
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"request": err.Error()}
	}

	out := make(Errors)
	for _, e := range validationErrors {
		field := e.Field()
		// Dive errors report as categoryId[2]; fold them onto the field.
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+e.Tag()]; ok {
			out[field] = msg
		} else {
			out[field] = "Field '" + field + "' failed on the '" + e.Tag() + "' rule"
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseProductForm builds a ProductRequest from multipart form values.
// Number fields that fail to parse surface the catalog's type messages
// instead of reaching the rule checks.
func ParseProductForm(values map[string][]string) (*ProductRequest, Errors) {
	req := &ProductRequest{
		ProductName:    formValue(values, "productName"),
		Description:    formValue(values, "description"),
		ProductDetails: formValue(values, "productDetails"),
		Color:          formValue(values, "color"),
	}
	parseErrs := make(Errors)

	if raw := formValue(values, "price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parseErrs["price"] = "Price should be a number"
		} else {
			req.Price = price
		}
	}

	if raw := formValue(values, "rating"); raw != "" && raw != "null" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parseErrs["rating"] = "Rating should be a number"
		} else {
			req.Rating = &rating
		}
	}

	if raw, ok := optionalValue(values, "reviews"); ok {
		req.Reviews = raw
	}
	if raw, ok := optionalValue(values, "brand"); ok {
		req.Brand = raw
	}

	// A single categoryId value and a repeated sequence are both accepted;
	// either way the ids stay ordered strings at this layer.
	req.CategoryIDs = values["categoryId"]

	if len(parseErrs) == 0 {
		return req, nil
	}
	return req, parseErrs
}

// ParseListQuery builds a ListQuery from query parameters, defaulting
// page and limit downstream rather than here.
func ParseListQuery(queries map[string]string) (*ListQuery, Errors) {
	q := &ListQuery{
		Search:    queries["search"],
		SortBy:    queries["sortBy"],
		SortOrder: queries["sortOrder"],
	}
	parseErrs := make(Errors)

	// Positivity is checked here rather than by the gt rule: a parsed zero
	// would otherwise be indistinguishable from an absent parameter.
	if raw := queries["page"]; raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			parseErrs["page"] = "Page number must be an integer"
		case page <= 0:
			parseErrs["page"] = "Page number must be a positive integer"
		default:
			q.Page = page
		}
	}
	if raw := queries["limit"]; raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			parseErrs["limit"] = "Limit must be an integer"
		case limit <= 0:
			parseErrs["limit"] = "Limit must be a positive integer"
		default:
			q.Limit = limit
		}
	}

	if len(parseErrs) == 0 {
		return q, nil
	}
	return q, parseErrs
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func optionalValue(values map[string][]string, key string) (*string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 || v[0] == "null" {
		return nil, false
	}
	s := v[0]
	return &s, true
}
