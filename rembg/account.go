package rembg

import (
	"context"
	"fmt"
	"net/http"

	nhttp "github.com/chaos-io/matting/util/http"
)

type AccountInfo struct {
	CreditsTotal        float64 `json:"credits_total"`
	CreditsSubscription float64 `json:"credits_subscription"`
	CreditsPayg         float64 `json:"credits_payg"`
	FreeCalls           int     `json:"free_calls"`
	Sizes               string  `json:"sizes"`
}

/*
	{"data":{"attributes":{
	  "credits":{"total":200,"subscription":150,"payg":50,"enterprise":0},
	  "api":{"free_calls":50,"sizes":"all"}}}}
*/
type accountResp struct {
	Data struct {
		Attributes struct {
			Credits struct {
				Total        float64 `json:"total"`
				Subscription float64 `json:"subscription"`
				Payg         float64 `json:"payg"`
			} `json:"credits"`
			API struct {
				FreeCalls int    `json:"free_calls"`
				Sizes     string `json:"sizes"`
			} `json:"api"`
		} `json:"attributes"`
	} `json:"data"`
}

// Account 查询剩余额度
func (r *RemoveBG) Account(ctx context.Context, apiKey string) (*AccountInfo, error) {
	resp := &accountResp{}
	reqParam := &nhttp.RequestParam{
		RequestURI: r.baseURL + accountPath,
		Method:     http.MethodGet,
		Header:     map[string]string{apiKeyHeader: apiKey, "Accept": "application/json"},
		Response:   resp,
	}
	if err := r.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		return nil, fmt.Errorf("get account: %w", classify(err))
	}

	attr := resp.Data.Attributes
	return &AccountInfo{
		CreditsTotal:        attr.Credits.Total,
		CreditsSubscription: attr.Credits.Subscription,
		CreditsPayg:         attr.Credits.Payg,
		FreeCalls:           attr.API.FreeCalls,
		Sizes:               attr.API.Sizes,
	}, nil
}
