package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gmpwatch/gmpwatch/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `                                      _       _
  __ _ _ __ ___  _ ____      ____ _| |_ ___| |__
 / _` + "`" + ` | '_ ` + "`" + ` _ \| '_ \ \ /\ / / _` + "`" + ` | __/ __| '_ \
| (_| | | | | | | |_) \ V  V / (_| | || (__| | | |
 \__, |_| |_| |_| .__/ \_/\_/ \__,_|\__\___|_| |_|
 |___/          |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gmpwatch",
	Short: "A grey market premium tracker for IPO listings.",
	Long: LOGO + `gmpwatch keeps a static IPO grey-market-premium page up to date: it scrapes
GMP data from public sources, merges it into a local store, and renders the
classified listings into your index.html on every scheduled run.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gmpwatch.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A local .env is handy on dev machines; ignore it when absent.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gmpwatch")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.gmpwatch.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default values for all keys
	viper.SetDefault("source.url", "")
	viper.SetDefault("output.path", "index.html")
	viper.SetDefault("render.groupcap", 10)
	viper.SetDefault("render.dedupe", false)
	viper.SetDefault("render.defaulttype", "Mainboard")
	viper.SetDefault("backup.dir", "backups")
	viper.SetDefault("backup.keep", 10)
	viper.SetDefault("scrape.dbpath", "")
	viper.SetDefault("scrape.exportpath", "gmp.csv")
	viper.SetDefault("scrape.enrichtype", false)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
