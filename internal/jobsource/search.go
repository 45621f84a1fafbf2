package jobsource

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

type SearchParams struct {
	Text string `mapstructure:"text"`
	// hhparam is custom tag for reflect. Please see below.
	Areas       []int    `mapstructure:"areas" hhparam:"area"`
	OrderBy     string   `mapstructure:"order_by"`
	Employer    uint     `mapstructure:"employer_id"`
	SearchField string   `mapstructure:"search_field"`
	Schedules   []string `mapstructure:"schedules" hhparam:"schedule"`
	PerPage     string   `mapstructure:"per_page"`
	Experience  string   `mapstructure:"experience"`
	Period      uint     `mapstructure:"period"`
}

// Search returns up to limit vacancies matching params. Search results carry only
// snippets; use GetVacancy for the full description.
func (c *Client) Search(ctx context.Context, params SearchParams, limit int) ([]*Vacancy, error) {
	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	items, err := c.GetItems(ctx, fmt.Sprintf("%s%s", c.APIURL, vacanciesPath), buildParams(params), limit)
	if err != nil {
		return nil, fmt.Errorf("search vacancies: %w", err)
	}

	var vacancies []*Vacancy
	if err := decode(items, &vacancies); err != nil {
		return nil, fmt.Errorf("decode vacancies: %w", err)
	}

	return vacancies, nil
}

func buildParams(params SearchParams) url.Values {
	q := url.Values{}
	value := reflect.ValueOf(params)

	for _, field := range reflect.VisibleFields(value.Type()) {
		// Our custom tag is using here.
		key := field.Tag.Get("hhparam")
		if key == "" {
			key = field.Tag.Get("mapstructure")
		}

		switch v := value.FieldByIndex(field.Index).Interface().(type) {
		case []int:
			for _, item := range v {
				q.Add(key, strconv.Itoa(item))
			}
		case []string:
			for _, item := range v {
				q.Add(key, item)
			}
		default:
			if s := fmt.Sprintf("%v", v); s != "" && s != "0" {
				q.Set(key, s)
			}
		}
	}

	return q
}
