package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	goens "github.com/wealdtech/go-ens/v3"

	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
	"github.com/x-xyz/ensgo/service/ens"
)

func init() {
	pflag.String("config", "infra/configs/config.yaml", "yaml config file")
	pflag.String("name", "", "name to resolve")
	pflag.StringArray("text", nil, "text record key, repeatable")
	pflag.StringArray("coin", nil, "coin type or symbol, repeatable")
	pflag.Bool("contenthash", false, "read the contenthash record")
	pflag.Bool("abi", false, "read the ABI record")
	pflag.Bool("strict", false, "fail on resolver errors instead of printing null")
	pflag.String("reverse", "", "address to reverse resolve")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	// keep stdout for the result
	lvl := "warn"
	if viper.GetBool("debug") {
		lvl = "debug"
	}
	_ = log.SetLevel(lvl)
}

func main() {
	ctx := bCtx.WithResolutionID(bCtx.Background())
	client := newEnsClient(ctx)

	var (
		res interface{}
		err error
	)
	if addr := viper.GetString("reverse"); addr != "" {
		if !domain.Address(addr).IsValid() {
			fail(domain.ErrInvalidAddress)
		}
		res, err = client.GetName(ctx, domain.Address(addr).ToCommon())
	} else {
		name, normErr := goens.Normalize(viper.GetString("name"))
		if normErr != nil || name == "" {
			fail(domain.ErrInvalidName)
		}
		opts := ens.RecordsOptions{
			Texts:       viper.GetStringSlice("text"),
			ContentHash: viper.GetBool("contenthash"),
			ABI:         viper.GetBool("abi"),
			Strict:      viper.GetBool("strict"),
		}
		for _, coin := range viper.GetStringSlice("coin") {
			opts.Coins = append(opts.Coins, coin)
		}
		res, err = client.GetRecords(ctx, name, opts)
	}
	if err != nil {
		fail(err)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(out))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
