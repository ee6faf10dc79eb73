package model

import (
	"strconv"
	"strings"
)

// CatalogColumns lists every column of the item master view a client may request.
var CatalogColumns = []string{
	"ITEMCODE", "ITEMNAME", "ITEMNAMEARA", "ARABICNAME", "BARCODE",
	"UNIT", "BASEUOM",
	"RETAILPRICE", "WHOLESALEPRICE", "BRANCHPRICE", "COSTPRICE",
	"CURRENTSTOCK",
	"CATEGORYCODE", "CATEGORYNAME",
	"MAINCATEGORY", "MAINCATEGORYCODE", "MAINCATEGORYNAME",
	"MICROCATEGORYCODE", "MICROCATEGORYNAME",
	"BRANDCODE", "BRANDNAME", "DESCRIPTION",
	"STORE1", "STORE2", "STORE3", "STORE4", "STORE5", "STORE6",
	"BRANCHSTOCK", "LOCATION", "LOCATIONCODE",
	"PROPERTY", "PROPERTYNAME",
	"SUPPLIERCODE", "SUPPLIERNAME", "SUPPLIERTYPE",
	"ONLINEPRICE", "FACTOR", "ITEMFLAG", "QUANTITYLIMIT", "THIRDPRICE",
	"AVERAGECOST", "LANDINGCOST", "ORIGIN",
}

// CatalogDefaultColumns is returned when no valid field is requested.
var CatalogDefaultColumns = []string{
	"ITEMCODE", "ITEMNAME", "ITEMNAMEARA", "BARCODE", "UNIT",
	"RETAILPRICE", "WHOLESALEPRICE", "BRANCHPRICE", "COSTPRICE",
	"CURRENTSTOCK",
	"CATEGORYCODE", "CATEGORYNAME", "BRANDCODE", "BRANDNAME",
	"DESCRIPTION",
}

var catalogColumnSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(CatalogColumns))
	for _, c := range CatalogColumns {
		set[c] = struct{}{}
	}
	return set
}()

const (
	CatalogDefaultLimit = 100
	CatalogMaxLimit     = 500
)

// CatalogQuery is a validated catalog browse request. Fields only ever
// holds names from CatalogColumns.
type CatalogQuery struct {
	Fields []string
	Search string
	Limit  int
	Offset int
}

// NewCatalogQuery builds a query from raw query string values.
//
// Unknown fields are dropped; limit is clamped to [1, CatalogMaxLimit] with
// 0 or garbage meaning the default; offset below zero or garbage becomes 0.
func NewCatalogQuery(fields, search, limit, offset string) CatalogQuery {
	return CatalogQuery{
		Fields: SelectCatalogColumns(fields),
		Search: strings.TrimSpace(search),
		Limit:  clampLimit(limit),
		Offset: clampOffset(offset),
	}
}

// SelectCatalogColumns filters a comma separated field list through the
// allow-list, keeping request order and dropping duplicates.
func SelectCatalogColumns(fields string) []string {
	var selected []string
	seen := make(map[string]struct{})

	for _, part := range strings.Split(fields, ",") {
		col := strings.ToUpper(strings.TrimSpace(part))
		if _, ok := catalogColumnSet[col]; !ok {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		selected = append(selected, col)
	}

	if len(selected) == 0 {
		return append([]string(nil), CatalogDefaultColumns...)
	}
	return selected
}

func clampLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		n = CatalogDefaultLimit
	}
	return max(1, min(n, CatalogMaxLimit))
}

func clampOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return max(0, n)
}

// CatalogPage is the wire shape of a catalog browse response.
type CatalogPage struct {
	Data   []map[string]any `json:"data"`
	Count  int              `json:"count"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Fields []string         `json:"fields"`
}
