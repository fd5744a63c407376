package item

import (
	"encoding/json"
	"math"
)

type Item struct {
	Id    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

// NewItem validates untrusted create attributes and returns an item without an id.
// The name is checked before the price, and the total is only computed once both pass.
func NewItem(name any, price any) (Item, error) {
	validName, err := parseName(name)
	if err != nil {
		return Item{}, err
	}
	validPrice, err := parsePrice(price)
	if err != nil {
		return Item{}, err
	}
	total := TotalFor(validPrice)
	if math.IsInf(total, 0) {
		return Item{}, ErrPriceRequired
	}

	return Item{
		Name:  validName,
		Price: validPrice,
		Total: total,
	}, nil
}

// TotalFor adds the 10% tax. Round prices stay exact (10 -> 11); prices too large
// to multiply by 11 are divided first so the total only overflows where price*1.1 does.
func TotalFor(price float64) float64 {
	if math.Abs(price) > math.MaxFloat64/11 {
		return price / 10 * 11
	}
	return price * 11 / 10
}

func parseName(raw any) (string, error) {
	name, ok := raw.(string)
	if !ok || name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

func parsePrice(raw any) (float64, error) {
	var price float64
	switch v := raw.(type) {
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int32:
		price = float64(v)
	case int64:
		price = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, ErrPriceRequired
		}
		price = f
	default:
		return 0, ErrPriceRequired
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrPriceRequired
	}
	return price, nil
}
