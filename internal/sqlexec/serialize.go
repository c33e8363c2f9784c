package sqlexec

import (
	"fmt"
	"time"

	"github.com/askdb/askdb/internal/fault"
)

// SerializeRow converts one row of driver-native values into the
// closed value model. dbTypes carries the driver's column type names
// (from sql.ColumnType.DatabaseTypeName), used to tell dates from
// timestamps.
func SerializeRow(columns []string, dbTypes []string, values []any) (Row, error) {
	row := make(Row, len(columns))
	for i, column := range columns {
		dbType := ""
		if i < len(dbTypes) {
			dbType = dbTypes[i]
		}
		value, err := serializeValue(values[i], dbType)
		if err != nil {
			return nil, fault.Wrap(fault.Serialization, err, "column %q has unsupported value", column)
		}
		row[column] = value
	}
	return row, nil
}

func serializeValue(raw any, dbType string) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case int64:
		return Int(v), nil
	case int32:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint8:
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case float32:
		return Float(float64(v)), nil
	case string:
		return Text(v), nil
	case []byte:
		return Text(string(v)), nil
	case time.Time:
		if dbType == "DATE" {
			return Date(v), nil
		}
		return Timestamp(v), nil
	default:
		return Value{}, fmt.Errorf("unmapped driver type %T", raw)
	}
}
