package common

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexInt decodes JSON integers the admin forms submit either as numbers
// (2023) or as quoted strings ("2023").
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(data, `"`)
	if string(trimmed) == "null" {
		return nil
	}
	n, err := strconv.Atoi(string(trimmed))
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int { return int(f) }
