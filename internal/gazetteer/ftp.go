package gazetteer

import (
	"context"
	"io"
	"net"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FTPClient downloads gazetteer files from the Census FTP site with
// anonymous login.
type FTPClient struct {
	timeout time.Duration
}

// NewFTPClient creates an FTPClient. A zero timeout defaults to 30s.
func NewFTPClient(timeout time.Duration) *FTPClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &FTPClient{timeout: timeout}
}

// hostWithDefaultPort appends :21 when the host carries no port.
func hostWithDefaultPort(host string) string {
	if _, _, err := net.SplitHostPort(host); err != nil {
		return net.JoinHostPort(host, "21")
	}
	return host
}

// ftpReadCloser ties the data connection's lifetime to the control
// connection, so closing the reader also disconnects from the server.
type ftpReadCloser struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpReadCloser) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpReadCloser) Close() error {
	respErr := r.resp.Close()
	quitErr := r.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "gazetteer: close ftp response")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "gazetteer: quit ftp connection")
	}
	return nil
}

// Fetch retrieves remotePath from the FTP host. The caller must close the
// returned ReadCloser to release the connection.
func (c *FTPClient) Fetch(ctx context.Context, host, remotePath string) (io.ReadCloser, error) {
	if remotePath == "" {
		return nil, eris.New("gazetteer: empty remote path")
	}
	host = hostWithDefaultPort(host)
	remotePath = path.Clean(remotePath)

	zap.L().Debug("gazetteer: ftp connecting",
		zap.String("host", host),
		zap.String("path", remotePath),
	)

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(c.timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "gazetteer: ftp dial")
	}

	if err := conn.Login("anonymous", "anonymous@"); err != nil {
		conn.Quit()
		return nil, eris.Wrap(err, "gazetteer: ftp login")
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		conn.Quit()
		return nil, eris.Wrap(err, "gazetteer: ftp retrieve")
	}

	return &ftpReadCloser{resp: resp, conn: conn}, nil
}
