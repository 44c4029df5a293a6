package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	httpx "pk3-httpd/http"
	"pk3-httpd/nfs"
	"pk3-httpd/tftp"
	"pk3-httpd/utils"
	"pk3-httpd/vfs"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// logOutput is stdout, tee'd to a rotating file when path is set.
func logOutput(path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

func main() {
	var games stringList
	basedir := flag.String("basedir", ".", "game base directory")
	flag.Var(&games, "game", "game or mod directory under basedir, searched before it (repeatable)")
	listen := flag.String("listen", ":26000", "game server network address; its port is the first http port tried")
	iface := flag.String("iface", "", "advertise this interface's IPv4 when -http-server-host is empty")
	tftpAddr := flag.String("tftp", "", "also serve archives over TFTP on this address")
	nfsAddr := flag.String("nfs", "", "also export the game directory read-only over NFS on this address")
	verbose := flag.Bool("v", false, "trace every request and response")
	logFile := flag.String("logfile", "", "also write logs to this file, rotated")
	cfg := httpx.NewConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	out := logOutput(*logFile)
	logger := log.New(out, "httpd ", log.LstdFlags)
	var debug *log.Logger
	if *verbose {
		debug = log.New(out, "httpd ", log.LstdFlags|log.Lmicroseconds)
	}

	fs, err := vfs.NewOS(*basedir, games...)
	if err != nil {
		log.Fatalf("open game directories: %v", err)
	}

	cfg.SetPort(utils.MustPort(*listen))
	if cfg.Host() == "" && *iface != "" {
		ip, err := utils.FirstIPv4Addr(*iface)
		if err != nil {
			logger.Printf("not advertising %s: %v", *iface, err)
		} else {
			cfg.SetHost(ip.String())
		}
	}
	reportFileLimit(logger)

	svc := httpx.NewService(cfg, fs, logger, debug)
	svc.Start()
	if u := svc.AdvertisedURL(); u != "" {
		logger.Printf("downloads available at %s", u)
	}

	if *tftpAddr != "" {
		loggerTFTP := log.New(out, "tftp ", log.LstdFlags)
		srv, _, err := tftp.StartTFTPServer(*tftpAddr, fs, loggerTFTP)
		if err != nil {
			log.Fatalf("start tftp failure: %v", err)
		}
		defer srv.Shutdown()
	}

	if *nfsAddr != "" {
		loggerNFS := log.New(out, "nfs ", log.LstdFlags)
		ln, err := nfs.StartNFSServer(*nfsAddr, fs.Primary(), loggerNFS)
		if err != nil {
			log.Fatalf("start nfs failure: %v", err)
		}
		defer ln.Close()
	}

	// SIGHUP rebinds the download server; anything else exits.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigs {
		if sig == syscall.SIGHUP {
			svc.Stop()
			svc.Start()
			logger.Printf("download url now %q", svc.AdvertisedURL())
			continue
		}
		log.Printf("received signal %s, exiting", sig)
		break
	}
	svc.Stop()
}
