package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/compras-api/pkg/jwt"
)

func newTokenCommand(d Deps) *cobra.Command {
	var user, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emitir un JWT para consumir la API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch role {
			case jwt.RoleAdmin, jwt.RoleComprador, jwt.RoleLectura:
			default:
				return fmt.Errorf("rol inválido: %q (admin, comprador o lectura)", role)
			}
			cfg := d.Config.JWT
			if cfg.Secret == "" {
				return errors.New("JWT_SECRET no está configurado")
			}
			tok, err := jwt.Generate(cfg.Secret, user, role, cfg.Issuer, cfg.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "cli", "ID de usuario del token")
	cmd.Flags().StringVar(&role, "role", jwt.RoleComprador, "Rol: admin, comprador o lectura")
	return cmd
}
