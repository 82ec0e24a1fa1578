package contract

type SSHRunner interface {
	Run(cmd string) (stdout, stderr string, err error)
	Close() error
}
