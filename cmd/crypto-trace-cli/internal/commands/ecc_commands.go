package commands

import (
	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"

	"github.com/spf13/cobra"
)

var curveFlags = map[string]string{
	"curve-p": "Field prime of a custom curve",
	"curve-a": "Coefficient a of a custom curve",
	"curve-b": "Coefficient b of a custom curve",
	"gx":      "Base point x of a custom curve",
	"gy":      "Base point y of a custom curve",
}

// curveFromFlags returns the default curve unless --curve-p is given, in which
// case every curve flag is required.
func curveFromFlags(cmd *cobra.Command) (cryptoalg.Curve, error) {
	if stringFlag(cmd, "curve-p") == "" {
		return cryptoalg.DefaultCurve(), nil
	}

	values, err := requiredBigs(cmd, "curve-p", "curve-a", "curve-b", "gx", "gy")
	if err != nil {
		return cryptoalg.Curve{}, err
	}
	return cryptoalg.Curve{
		P: values[0],
		A: values[1],
		B: values[2],
		G: cryptoalg.ECPoint{X: values[3], Y: values[4]},
	}, nil
}

// pointFromFlags reads --x/--y; ok is false when neither is set
func pointFromFlags(cmd *cobra.Command) (cryptoalg.ECPoint, bool, error) {
	if stringFlag(cmd, "x") == "" && stringFlag(cmd, "y") == "" {
		return cryptoalg.ECPoint{}, false, nil
	}
	values, err := requiredBigs(cmd, "x", "y")
	if err != nil {
		return cryptoalg.ECPoint{}, false, err
	}
	return cryptoalg.ECPoint{X: values[0], Y: values[1]}, true, nil
}

func registerECCCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	eccCmd := newGroupCommand("ecc", "Elliptic curves over small prime fields")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "Print the default curve",
		RunE: handler.computeCmd(func(engine *app.Engine, _ *cobra.Command) (any, error) {
			return engine.ECC.Params(), nil
		}),
	}

	pointsCmd := &cobra.Command{
		Use:   "points",
		Short: "Enumerate every point of the curve",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			curve, err := curveFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			return engine.ECC.Points(curve)
		}),
	}
	addStringFlags(pointsCmd, curveFlags)

	multiplyCmd := &cobra.Command{
		Use:   "multiply",
		Short: "Compute k*P by double-and-add; P defaults to G",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			curve, err := curveFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			k, err := requiredBig(cmd, "k")
			if err != nil {
				return nil, err
			}
			point, ok, err := pointFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			if !ok {
				point = curve.G
			}
			return engine.ECC.Multiply(curve, k, point)
		}),
	}
	addStringFlags(multiplyCmd, curveFlags)
	addStringFlags(multiplyCmd, map[string]string{"k": "Scalar", "x": "Point x", "y": "Point y"})

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Compute Q = d*G; d is drawn when omitted",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			curve, err := curveFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			d, err := bigFlag(cmd, "d")
			if err != nil {
				return nil, err
			}
			return engine.ECC.GenerateKeys(curve, d)
		}),
	}
	addStringFlags(keysCmd, curveFlags)
	addStringFlags(keysCmd, map[string]string{"d": "Private scalar"})

	sharedSecretCmd := &cobra.Command{
		Use:   "shared-secret",
		Short: "Compute S = d*Q for the counterparty's public point Q",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			curve, err := curveFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			d, err := requiredBig(cmd, "d")
			if err != nil {
				return nil, err
			}
			q, ok, err := pointFromFlags(cmd)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, cryptoalg.NewValidationError("Missing public key (--x, --y)")
			}
			return engine.ECC.SharedSecret(curve, d, q)
		}),
	}
	addStringFlags(sharedSecretCmd, curveFlags)
	addStringFlags(sharedSecretCmd, map[string]string{"d": "Own private scalar", "x": "Public point x", "y": "Public point y"})

	eccCmd.AddCommand(paramsCmd, pointsCmd, multiplyCmd, keysCmd, sharedSecretCmd)
	rootCmd.AddCommand(eccCmd)
}
