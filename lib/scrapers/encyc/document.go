package encyc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
)

// DivisionInfo describes the score line on a tablet.
type DivisionInfo struct {
	Description string `json:"division_description"`
	Type        string `json:"division_type"`
}

// Document is a parsed medicine entry. Fields maps canonical field
// names to their extracted values; fields outside FieldOrder are
// carried along and serialized after the known ones.
type Document struct {
	Fields   map[string]string
	Division *DivisionInfo
}

// FieldOrder is the canonical serialization order of a medicine
// record. fields not listed here sort alphabetically after these.
var FieldOrder = []string{
	"id",
	"korean_name",
	"english_name",
	"title",
	"category",
	"classification",
	"company",
	"insurance_code",
	"components",
	"efficacy",
	"dosage",
	"appearance",
	"shape_type",
	"shape",
	"color",
	"size",
	"identification",
	"storage_conditions",
	"expiration",
	"precautions",
	"image_quality",
	"image_url",
	"image_width",
	"image_height",
	"original_width",
	"original_height",
	"image_alt",
	"link",
	"url",
	"description",
	"extracted_time",
	"collection_time",
}

// MechanicalFields default to an empty string instead of the korean
// "no information" placeholder when missing.
var MechanicalFields = map[string]bool{
	"image_url":       true,
	"link":            true,
	"url":             true,
	"extracted_time":  true,
	"collection_time": true,
	"image_width":     true,
	"image_height":    true,
	"original_width":  true,
	"original_height": true,
	"image_quality":   true,
	"image_alt":       true,
}

const NoInformation = "정보 없음"

func NewDocument() *Document {
	return &Document{Fields: map[string]string{}}
}

func (d *Document) Get(field string) string {
	return d.Fields[field]
}

func (d *Document) Set(field, value string) {
	d.Fields[field] = value
}

// legacy field names left behind by older collection runs. values are
// moved to the canonical name only when it is missing or empty.
var legacyFieldNames = map[string]string{
	"link":           "source_url",
	"description":    "overview",
	"category_name":  "category",
	"medicine_name":  "korean_name",
	"eng_name":       "english_name",
	"company_name":   "company",
	"shape_info":     "shape",
	"color_info":     "color",
	"size_info":      "size",
	"effect":         "efficacy",
	"caution":        "precautions",
	"usage":          "dosage",
	"storage_method": "storage",
	"validity":       "expiration",
}

// NormalizeFieldNames migrates legacy field names in place.
func (d *Document) NormalizeFieldNames() {
	for old, canonical := range legacyFieldNames {
		value, ok := d.Fields[old]
		if !ok {
			continue
		}
		if existing := d.Fields[canonical]; existing == "" || existing == NoInformation {
			d.Fields[canonical] = value
		}
		delete(d.Fields, old)
	}
}

var docIdPattern = regexp.MustCompile(`docId=(\d+)`)

// DocIdFromUrl extracts the numeric encyclopedia document id from an
// entry url, or "" when the url does not carry one.
func DocIdFromUrl(url string) string {
	groups := docIdPattern.FindStringSubmatch(url)
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}

// DocumentId derives a stable record id. entries with a docId in
// their url get "M<docId>", anything else falls back to a hash of the
// name and company.
func DocumentId(url, name, company string) string {
	if docId := DocIdFromUrl(url); docId != "" {
		return "M" + docId
	}
	h := fnv.New32a()
	h.Write([]byte(name + "_" + company))
	return fmt.Sprintf("MC%07d", h.Sum32()%10000000)
}

// keys returns field names in canonical order, unknown fields sorted
// at the end.
func (d *Document) keys() []string {
	known := map[string]bool{}
	for _, field := range FieldOrder {
		known[field] = true
	}
	var keys []string
	for _, field := range FieldOrder {
		if _, ok := d.Fields[field]; ok {
			keys = append(keys, field)
		}
	}
	var extra []string
	for field := range d.Fields {
		if !known[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func (d *Document) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	first := true
	writeKey := func(key string) error {
		if !first {
			buffer.WriteByte(',')
		}
		first = false
		encoded, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buffer.Write(encoded)
		buffer.WriteByte(':')
		return nil
	}
	for _, field := range d.keys() {
		err := writeKey(field)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(d.Fields[field])
		if err != nil {
			return nil, err
		}
		buffer.Write(encoded)
	}
	if d.Division != nil {
		err := writeKey("division_info")
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(d.Division)
		if err != nil {
			return nil, err
		}
		buffer.Write(encoded)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	d.Fields = map[string]string{}
	d.Division = nil
	for key, value := range raw {
		if key == "division_info" {
			var division DivisionInfo
			err := json.Unmarshal(value, &division)
			if err != nil {
				return err
			}
			d.Division = &division
			continue
		}
		var str string
		err := json.Unmarshal(value, &str)
		if err != nil {
			// tolerate numeric values from older runs
			var number float64
			if json.Unmarshal(value, &number) == nil {
				str = fmt.Sprintf("%v", number)
			} else {
				continue
			}
		}
		d.Fields[key] = str
	}
	return nil
}
