package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// StructToCsvHeader takes a struct type and returns a slice of strings representing the CSV header.
// It uses the `csv` tag on struct fields to determine the header name.
// If a field doesn't have a `csv` tag, the field name is used.
func StructToCsvHeader(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		headers = append(headers, headerName(t.Field(i)))
	}
	return headers
}

// WriteToCsvFile writes the given headers and data to a CSV file at the specified filePath.
func WriteToCsvFile[T any](filePath string, headers []string, data []T) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteCsv(file, headers, data)
}

// WriteCsv writes the headers and one row per item of data to w.
// For slices, it joins the elements using a semicolon (;) to handle multi-value fields.
func WriteCsv[T any](w io.Writer, headers []string, data []T) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range data {
		row, err := structToRow(item, headers)
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func structToRow(item any, headers []string) ([]string, error) {
	row := make([]string, len(headers))
	v := reflect.ValueOf(item)

	// If item is a pointer, get the value it points to
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("data must be a slice of structs")
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		idx := indexOf(headers, headerName(t.Field(i)))
		if idx < 0 {
			continue // Skip fields not in the headers
		}

		fieldValue := v.Field(i)
		if fieldValue.Kind() == reflect.Slice {
			sliceValues := make([]string, fieldValue.Len())
			for j := range sliceValues {
				sliceValues[j] = fmt.Sprintf("%v", fieldValue.Index(j).Interface())
			}
			row[idx] = strings.Join(sliceValues, ";")
		} else {
			row[idx] = fmt.Sprintf("%v", fieldValue.Interface())
		}
	}
	return row, nil
}

func headerName(field reflect.StructField) string {
	if csvTag := field.Tag.Get("csv"); csvTag != "" {
		return csvTag
	}
	return field.Name
}

// indexOf returns the index of a string in a slice or -1 if not found
func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
