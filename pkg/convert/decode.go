package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/getmockd/phiremock/pkg/domain"
)

// ErrMalformed is returned when a wire structure does not describe a valid expectation.
var ErrMalformed = errors.New("malformed expectation")

// MapToExpectation decodes wire structures into expectations.
type MapToExpectation struct{}

// Decode converts a map produced by encoding/json into an expectation.
func (MapToExpectation) Decode(m map[string]interface{}) (*domain.Expectation, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}

	e := &domain.Expectation{}
	var err error
	if e.ScenarioName, err = getString(m, keyScenarioName); err != nil {
		return nil, err
	}
	if e.ScenarioStateIs, err = getString(m, keyScenarioStateIs); err != nil {
		return nil, err
	}
	if e.NewScenarioState, err = getString(m, keyNewScenarioState); err != nil {
		return nil, err
	}
	if e.ProxyTo, err = getString(m, keyProxyTo); err != nil {
		return nil, err
	}
	if e.Priority, err = getInt(m, keyPriority); err != nil {
		return nil, err
	}

	if raw, ok := m[keyRequest]; ok && raw != nil {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s must be an object", ErrMalformed, keyRequest)
		}
		if e.Request, err = decodeRequest(obj); err != nil {
			return nil, err
		}
	}

	if raw, ok := m[keyResponse]; ok {
		if raw == nil {
			e.Response = domain.EmptyResponse()
		} else {
			obj, ok := raw.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: %s must be an object or null", ErrMalformed, keyResponse)
			}
			if e.Response, err = decodeResponse(obj); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

func decodeRequest(m map[string]interface{}) (*domain.RequestConditions, error) {
	r := &domain.RequestConditions{}
	var err error
	if r.Method, err = getString(m, keyMethod); err != nil {
		return nil, err
	}
	if raw, ok := m[keyURL]; ok && raw != nil {
		c, err := decodeCondition(keyURL, raw)
		if err != nil {
			return nil, err
		}
		r.URL = &c
	}
	if raw, ok := m[keyBody]; ok && raw != nil {
		c, err := decodeCondition(keyBody, raw)
		if err != nil {
			return nil, err
		}
		r.Body = &c
	}
	if raw, ok := m[keyHeaders]; ok && raw != nil {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: request headers must be an object", ErrMalformed)
		}
		if len(obj) > 0 {
			r.Headers = make(map[string]domain.Condition, len(obj))
			for name, v := range obj {
				c, err := decodeCondition("header "+name, v)
				if err != nil {
					return nil, err
				}
				r.Headers[name] = c
			}
		}
	}
	return r, nil
}

// decodeCondition reads the {"<matcher>": "<value>"} form.
func decodeCondition(field string, raw interface{}) (domain.Condition, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok || len(obj) != 1 {
		return domain.Condition{}, fmt.Errorf("%w: %s must be an object with exactly one matcher", ErrMalformed, field)
	}
	for matcher, v := range obj {
		value, ok := v.(string)
		if !ok {
			return domain.Condition{}, fmt.Errorf("%w: %s matcher %q must have a string value", ErrMalformed, field, matcher)
		}
		c := domain.Condition{Matcher: domain.Matcher(matcher), Value: value}
		if !c.Matcher.Valid() {
			return domain.Condition{}, fmt.Errorf("%w: %s uses unknown matcher %q", ErrMalformed, field, matcher)
		}
		return c, nil
	}
	return domain.Condition{}, nil
}

func decodeResponse(m map[string]interface{}) (*domain.Response, error) {
	r := &domain.Response{}
	var err error
	if r.StatusCode, err = getInt(m, keyStatusCode); err != nil {
		return nil, err
	}
	if r.Body, err = getString(m, keyBody); err != nil {
		return nil, err
	}
	if r.DelayMillis, err = getInt(m, keyDelayMillis); err != nil {
		return nil, err
	}
	if raw, ok := m[keyHeaders]; ok && raw != nil {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: response headers must be an object", ErrMalformed)
		}
		if len(obj) > 0 {
			r.Headers = make(map[string]string, len(obj))
			for k, v := range obj {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("%w: response header %q must be a string", ErrMalformed, k)
				}
				r.Headers[k] = s
			}
		}
	}
	return r, nil
}

func getString(m map[string]interface{}, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrMalformed, key, raw)
	}
	return s, nil
}

func getInt(m map[string]interface{}, key string) (int, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, outOfRange(key, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrMalformed, key, v)
		}
		// -MinInt is the first float64 above MaxInt.
		if v < math.MinInt || v >= -float64(math.MinInt) {
			return 0, outOfRange(key, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrMalformed, key, err)
		}
		if n < math.MinInt || n > math.MaxInt {
			return 0, outOfRange(key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrMalformed, key, raw)
	}
}

func outOfRange(key string, v interface{}) error {
	return fmt.Errorf("%w: %s %v is out of range", ErrMalformed, key, v)
}
