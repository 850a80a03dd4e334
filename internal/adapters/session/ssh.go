// internal/adapters/session/ssh.go
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"netsql/internal/core/domain"
	"netsql/internal/core/ports"
	"netsql/internal/platform/logx"
)

// SSHConfig holds what is needed to log into a device.
type SSHConfig struct {
	User           string
	Password       string
	Port           int
	DialTimeout    time.Duration
	CommandTimeout time.Duration
	KnownHosts     string
	StrictHostKey  bool
}

// SSHFactory abre sesiones SSH contra dispositivos. Cada comando corre en su
// propio canal exec sobre la misma conexión.
type SSHFactory struct {
	cfg       SSHConfig
	hostKeyCB ssh.HostKeyCallback
	logger    logx.Logger
}

// NewSSHFactory builds the host key policy up front so a bad known_hosts file
// fails before any host is contacted.
func NewSSHFactory(cfg SSHConfig, logger logx.Logger) (*SSHFactory, error) {
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 15 * time.Second
	}

	var cb ssh.HostKeyCallback
	if cfg.StrictHostKey {
		if _, err := os.Stat(cfg.KnownHosts); err != nil {
			return nil, fmt.Errorf("known_hosts file not found at %q and strict-host-key is enabled", cfg.KnownHosts)
		}
		kh, err := knownhosts.New(cfg.KnownHosts)
		if err != nil {
			return nil, fmt.Errorf("known_hosts: %w", err)
		}
		cb = kh
	} else {
		cb = ssh.InsecureIgnoreHostKey()
	}

	return &SSHFactory{
		cfg:       cfg,
		hostKeyCB: cb,
		logger:    logger.With("component", "ssh"),
	}, nil
}

func (f *SSHFactory) clientConfig() *ssh.ClientConfig {
	password := f.cfg.Password
	return &ssh.ClientConfig{
		User: f.cfg.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			// IOS suele pedir keyboard-interactive en vez de password
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: f.hostKeyCB,
		Timeout:         f.cfg.DialTimeout,
	}
}

// Open dials host and completes the SSH handshake.
func (f *SSHFactory) Open(ctx context.Context, host domain.Host) (ports.Session, error) {
	addr := net.JoinHostPort(host.Address, strconv.Itoa(f.cfg.Port))
	log := f.logger.With("host", host.Address)

	d := net.Dialer{Timeout: f.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, domain.NewPipelineError(Classify(err), host.Address, "", err)
	}

	// el handshake no acepta ctx; se acota con un deadline sobre la conexión
	deadline := time.Now().Add(f.cfg.DialTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, f.clientConfig())
	if err != nil {
		_ = conn.Close()
		return nil, domain.NewPipelineError(Classify(err), host.Address, "", err)
	}
	_ = conn.SetDeadline(time.Time{})

	log.Debug("ssh session established", "server_version", string(c.ServerVersion()))
	return &sshSession{
		client:  ssh.NewClient(c, chans, reqs),
		host:    host,
		timeout: f.cfg.CommandTimeout,
		logger:  log,
	}, nil
}

type sshSession struct {
	client  *ssh.Client
	host    domain.Host
	timeout time.Duration
	logger  logx.Logger
}

// Run executes command on a fresh exec channel and returns its combined output.
// A non-zero exit status is not an error: devices report bad commands in the
// output text.
func (s *sshSession) Run(ctx context.Context, command string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sess, err := s.client.NewSession()
	if err != nil {
		return "", domain.NewPipelineError(Classify(err), s.host.Address, command, err)
	}
	defer sess.Close()

	type result struct {
		out []byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		out, err := sess.CombinedOutput(command)
		ch <- result{out, err}
	}()

	select {
	case r := <-ch:
		var exitErr *ssh.ExitError
		var missing *ssh.ExitMissingError
		switch {
		case r.err == nil:
		case errors.As(r.err, &exitErr):
			s.logger.Debug("command exited non-zero", "command", command, "status", exitErr.ExitStatus())
		case errors.As(r.err, &missing):
			s.logger.Debug("command finished without exit status", "command", command)
		default:
			return "", domain.NewPipelineError(Classify(r.err), s.host.Address, command, r.err)
		}
		return string(r.out), nil
	case <-ctx.Done():
		_ = sess.Close()
		return "", domain.NewPipelineError(domain.ErrSessionTimeout, s.host.Address, command, ctx.Err())
	}
}

func (s *sshSession) Close() error {
	return s.client.Close()
}

// Classify maps a connection error to a session error kind.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return domain.ErrSessionTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.ErrSessionTimeout
	}
	var keyErr *knownhosts.KeyError
	if errors.As(err, &keyErr) {
		return domain.ErrSessionProtocol
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "unable to authenticate"), strings.Contains(msg, "no supported methods remain"):
		return domain.ErrSessionAuth
	case strings.Contains(msg, "i/o timeout"):
		return domain.ErrSessionTimeout
	case strings.Contains(msg, "ssh: handshake failed"), strings.Contains(msg, "no common algorithm"),
		strings.Contains(msg, "ssh: overflow"), strings.Contains(msg, "protocol version"):
		return domain.ErrSessionProtocol
	}
	return domain.ErrSession
}
