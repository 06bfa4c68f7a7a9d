package chainrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"CreditPull/internal/domain/models"
	xhttp "CreditPull/pkg/http"
	"CreditPull/pkg/util"

	"github.com/shopspring/decimal"
)

// Method selectors for the pool contracts, fixed at package init.
var (
	selectorPoolConfig     = selector("poolConfig()")
	selectorGetPoolSummary = selector("getPoolSummary()")
)

// Client issues read-only eth_call requests against a JSON-RPC provider.
type Client struct {
	providerURL string
	http        *xhttp.Client
}

// New creates a chain RPC client for one provider endpoint.
func New(providerURL string, timeout time.Duration) *Client {
	return &Client{
		providerURL: providerURL,
		http:        xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params ...any) (string, error) {
	var resp rpcResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.providerURL,
		Body:   rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("rpc %s: %w", method, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("rpc %s: %s (code %d)", method, resp.Error.Message, resp.Error.Code)
	}
	return resp.Result, nil
}

func (c *Client) ethCall(ctx context.Context, to, data string) ([]byte, error) {
	result, err := c.call(ctx, "eth_call", map[string]string{"to": to, "data": data}, "latest")
	if err != nil {
		return nil, err
	}
	return decodeHex(result)
}

// VerifyNetwork confirms the provider serves the expected chain. Called at
// adapter construction so a misconfigured provider fails fast.
func (c *Client) VerifyNetwork(ctx context.Context, chain models.Chain) error {
	result, err := c.call(ctx, "net_version")
	if err != nil {
		return err
	}
	var version string
	// net_version results arrive either quoted or bare depending on provider.
	if jerr := json.Unmarshal([]byte(result), &version); jerr != nil {
		version = result
	}
	if version != chain.NetworkID() {
		return fmt.Errorf("rpc provider serves network %s, want chain %s (%s)", version, chain, chain.NetworkID())
	}
	return nil
}

// GetPoolSummary resolves the pool's config contract and reads the pool
// summary tuple from it.
func (c *Client) GetPoolSummary(ctx context.Context, pool models.PoolSetting) (*models.PoolSummary, error) {
	checksummed := util.ChecksumAddress(pool.PoolAddress)

	configData, err := c.ethCall(ctx, checksummed, selectorPoolConfig)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to get pool config address")
	}
	configAddress, err := wordAddress(configData, 0)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool config address")
	}

	summaryData, err := c.ethCall(ctx, util.ChecksumAddress(configAddress), selectorGetPoolSummary)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to get pool summary")
	}
	return decodePoolSummary(summaryData)
}

// decodePoolSummary unpacks the getPoolSummary() return tuple:
// (token address, apr, payPeriod, maxCreditAmount, liquidityCap,
//  name string, symbol string, decimals).
func decodePoolSummary(data []byte) (*models.PoolSummary, error) {
	tokenAddress, err := wordAddress(data, 0)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool summary")
	}
	apr, err := wordBig(data, 1)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool summary")
	}
	maxCredit, err := wordBig(data, 3)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool summary")
	}
	tokenName, err := wordString(data, 5)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool summary")
	}
	tokenSymbol, err := wordString(data, 6)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool summary")
	}
	tokenDecimal, err := wordBig(data, 7)
	if err != nil {
		return nil, models.NewUpstreamError(err, "failed to decode pool summary")
	}

	return &models.PoolSummary{
		TokenAddress:    tokenAddress,
		APRBps:          apr.Int64(),
		MaxCreditAmount: decimal.NewFromBigInt(maxCredit, 0),
		TokenName:       tokenName,
		TokenSymbol:     tokenSymbol,
		TokenDecimal:    int(tokenDecimal.Int64()),
	}, nil
}
