package rowstore

import "fmt"

// IdentityKey is the type an identity map is keyed by.
type IdentityKey interface {
	int64 | string
}

// CreateIdentityMap indexes records by the value of field. Every record
// must carry the field and no two records may share a key.
func CreateIdentityMap[K IdentityKey, T Record](records []T, field string) (map[K]T, error) {
	result := make(map[K]T, len(records))
	for i, rec := range records {
		v, ok := rec.Field(field)
		if !ok {
			return nil, fmt.Errorf("%w: record %d has no field %q", ErrMissingIdentityField, i, field)
		}

		key, err := identityKey[K](v)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d field %q: %w", ErrMissingIdentityField, i, field, err)
		}

		if _, dup := result[key]; dup {
			return nil, fmt.Errorf("%w: %v appears more than once for field %q", ErrDuplicateIdentity, key, field)
		}

		result[key] = rec
	}

	return result, nil
}

func identityKey[K IdentityKey](v any) (K, error) {
	var key K
	switch k := any(&key).(type) {
	case *int64:
		n, err := ToInt64(v)
		if err != nil {
			return key, err
		}
		*k = n
	case *string:
		if IsNull(v) {
			return key, fmt.Errorf("identity is NULL")
		}
		*k = ToString(v)
	}

	return key, nil
}
