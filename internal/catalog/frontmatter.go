package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MinReleaseYear is the earliest release year accepted in frontmatter.
const MinReleaseYear = 1970

// splitFrontmatter returns the YAML between the opening and closing "---"
// lines and the remaining body. ok is false when content does not start with
// a complete block.
func splitFrontmatter(content string) (block, body string, ok bool) {
	s := strings.TrimPrefix(content, "\ufeff")
	lines := strings.SplitAfter(s, "\n")
	if len(lines) == 0 || trimEOL(lines[0]) != "---" {
		return "", content, false
	}
	for i := 1; i < len(lines); i++ {
		if trimEOL(lines[i]) == "---" {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], ""), true
		}
	}
	return "", content, false
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// ParseEntry parses the frontmatter block at the head of content into an Entry.
//
// ok is false, with a nil error, when content carries no frontmatter. A
// non-nil error is always an *InvalidFieldError naming the first offending
// field; validation stops there. Identity halves not given by the "company"
// and "controller" keys are left empty for the caller to fill in.
func ParseEntry(content string) (Entry, bool, error) {
	return parseEntry(content, time.Now().Year())
}

func parseEntry(content string, maxYear int) (Entry, bool, error) {
	block, _, ok := splitFrontmatter(content)
	if !ok {
		return Entry{}, false, nil
	}

	var raw any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return Entry{}, false, invalidField("frontmatter", "YAML mapping", err.Error())
	}
	if raw == nil {
		return Entry{}, false, nil
	}
	fm, isMap := raw.(map[string]any)
	if !isMap {
		return Entry{}, false, invalidField("frontmatter", "YAML mapping", raw)
	}

	e, err := validate(fm, maxYear)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func validate(fm map[string]any, maxYear int) (Entry, error) {
	var (
		e   Entry
		err error
	)

	if e.ID.Maker, err = optionalSlug(fm, "company"); err != nil {
		return Entry{}, err
	}
	if e.ID.Model, err = optionalSlug(fm, "controller"); err != nil {
		return Entry{}, err
	}
	legacyID, err := optionalSlug(fm, "id")
	if err != nil {
		return Entry{}, err
	}
	if e.ID.Model == "" {
		e.ID.Model = legacyID
	}

	if e.Name, err = requiredString(fm, "name"); err != nil {
		return Entry{}, err
	}
	if e.MakerName, err = requiredString(fm, "maker"); err != nil {
		return Entry{}, err
	}

	bt, _ := fm["buttonType"].(string)
	if !ButtonType(bt).Valid() {
		return Entry{}, invalidField("buttonType", `"digital" | "analog"`, fm["buttonType"])
	}
	e.ButtonType = ButtonType(bt)

	if v, present := fm["priceUSD"]; present && v != nil {
		n, isNum := toNumber(v)
		if !isNum || n <= 0 {
			return Entry{}, invalidField("priceUSD", "positive number", v)
		}
		e.PriceUSD = &n
	}

	if v, present := fm["link"]; present && v != nil {
		s, isStr := v.(string)
		if !isStr || !isAbsoluteURL(s) {
			return Entry{}, invalidField("link", "absolute URL", v)
		}
		e.Link = s
	}

	sold, isBool := toBool(fm["currentlySold"])
	if !isBool {
		return Entry{}, invalidField("currentlySold", "boolean", fm["currentlySold"])
	}
	e.CurrentlySold = sold

	year, isInt := toInteger(fm["releaseYear"])
	if !isInt || year < MinReleaseYear || year > maxYear {
		return Entry{}, invalidField("releaseYear",
			fmt.Sprintf("integer between %d and %d", MinReleaseYear, maxYear), fm["releaseYear"])
	}
	e.ReleaseYear = year

	if e.SwitchTypes, err = switchTypes(fm["switchType"]); err != nil {
		return Entry{}, err
	}

	if v, present := fm["weightGrams"]; present && v != nil {
		w, isInt := toInteger(v)
		if !isInt || w <= 0 {
			return Entry{}, invalidField("weightGrams", "positive integer", v)
		}
		e.WeightGrams = &w
	}

	if v, present := fm["dimensionsMm"]; present && v != nil {
		d, err := dimensions(v)
		if err != nil {
			return Entry{}, err
		}
		e.DimensionsMm = d
	}

	return e, nil
}

func optionalSlug(fm map[string]any, key string) (string, error) {
	v, present := fm[key]
	if !present || v == nil {
		return "", nil
	}
	s, isStr := scalarString(v)
	s = strings.TrimSpace(s)
	if !isStr || s == "" || strings.Contains(s, "/") {
		return "", invalidField(key, "slug string", v)
	}
	return s, nil
}

func requiredString(fm map[string]any, key string) (string, error) {
	v := fm[key]
	s, isStr := v.(string)
	if !isStr || strings.TrimSpace(s) == "" {
		return "", invalidField(key, "non-empty string", v)
	}
	return s, nil
}

// scalarString accepts strings and integers, since YAML reads a slug such as
// 2024 as a number.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	}
	return "", false
}

// switchTypes normalises a bare string into a one-element list.
func switchTypes(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, 0, len(x))
		for i, item := range x {
			s, isStr := item.(string)
			if !isStr {
				return nil, invalidField(fmt.Sprintf("switchType[%d]", i), "string", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, invalidField("switchType", "string or list of strings", v)
}

func dimensions(v any) (*Dimensions, error) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return nil, invalidField("dimensionsMm", "object with width, depth and height", v)
	}
	var d Dimensions
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"width", &d.Width},
		{"depth", &d.Depth},
		{"height", &d.Height},
	} {
		n, isNum := toNumber(m[f.key])
		if !isNum || n <= 0 {
			return nil, invalidField("dimensionsMm."+f.key, "positive number", m[f.key])
		}
		*f.dst = n
	}
	return &d, nil
}

// toNumber accepts YAML numbers and numeric-looking strings.
func toNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint64:
		n = float64(x)
	case float64:
		n = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func toInteger(v any) (int, bool) {
	n, ok := toNumber(v)
	if !ok || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.TrimSpace(x) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && u.Scheme != "" && u.Host != ""
}
