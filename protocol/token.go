package protocol

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/asceswap/go-asceswap/scale"
	"github.com/asceswap/go-asceswap/u256"
)

// TokenBalance is an account's holding of one ERC-20 token.
type TokenBalance struct {
	Units     *big.Int
	Decimals  int32
	Formatted decimal.Decimal
}

// TokenDecimals fetches a token's decimals count, cached for the session:
// decimals are fixed per token and never change underneath a running client.
func (r *Reader) TokenDecimals(ctx context.Context, token string) (int32, error) {
	if cached, ok := r.decimalsCache.Get(token); ok {
		return cached.(int32), nil
	}

	felts, err := r.client.Call(ctx, token, entrypointDecimals, nil)
	if err != nil {
		return 0, fmt.Errorf("token decimals: %w", err)
	}
	fr := u256.NewReader(felts)
	decimals, err := fr.Uint64()
	if err != nil {
		return 0, fmt.Errorf("token decimals: %w", err)
	}
	if err := fr.Done(); err != nil {
		return 0, fmt.Errorf("token decimals: %w", err)
	}

	r.decimalsCache.Add(token, int32(decimals))
	return int32(decimals), nil
}

// TokenBalance fetches an account's balance and the token's decimals
// concurrently, and formats the holding in human units. Both sub-queries
// must succeed.
func (r *Reader) TokenBalance(ctx context.Context, token, account string) (TokenBalance, error) {
	var (
		units    *big.Int
		decimals int32
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		felts, err := r.client.Call(gctx, token, entrypointBalanceOf, []string{account})
		if err != nil {
			return fmt.Errorf("balance_of: %w", err)
		}
		fr := u256.NewReader(felts)
		wire, err := fr.Wire()
		if err != nil {
			return fmt.Errorf("balance_of: %w", err)
		}
		if err := fr.Done(); err != nil {
			return fmt.Errorf("balance_of: %w", err)
		}
		units = u256.Decode(wire)
		return nil
	})
	g.Go(func() error {
		d, err := r.TokenDecimals(gctx, token)
		if err != nil {
			return err
		}
		decimals = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return TokenBalance{}, fmt.Errorf("token balance: %w", err)
	}

	return TokenBalance{
		Units:     units,
		Decimals:  decimals,
		Formatted: scale.FromBaseUnits(units, decimals),
	}, nil
}
