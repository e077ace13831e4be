package wire

import (
	"fmt"
	"io"

	"github.com/seabrook/evalload/remote"
)

// ByteValue is the mirror form of one byte. It is the only mirror kind this
// protocol carries.
type ByteValue byte

// Client drives the capability protocol over a debugging connection and
// exposes it as a remote.Target. Calls are strictly synchronous: one
// command frame out, one reply frame back, in sequence. The capability
// snapshot comes from the attach layer at dial time.
type Client struct {
	conn io.ReadWriteCloser
	caps remote.Capabilities
	seq  uint32
}

var _ remote.Target = (*Client)(nil)

// NewClient wraps an established debugging connection.
func NewClient(conn io.ReadWriteCloser, caps remote.Capabilities) *Client {
	return &Client{conn: conn, caps: caps}
}

// call sends one command and blocks for its reply.
func (c *Client) call(cmd *Command) (*Reply, error) {
	c.seq++
	cmd.Seq = c.seq

	data, err := MarshalCommand(cmd)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal command: %w", err)
	}
	if err := WriteFrame(c.conn, data); err != nil {
		return nil, err
	}
	data, err = ReadFrame(c.conn)
	if err != nil {
		return nil, err
	}
	reply, err := UnmarshalReply(data)
	if err != nil {
		return nil, err
	}
	if reply.Seq != cmd.Seq {
		return nil, fmt.Errorf("wire: reply seq %d does not match command seq %d", reply.Seq, cmd.Seq)
	}
	if reply.Status != StatusOK {
		return nil, fmt.Errorf("wire: target rejected %v: %s", cmd.Op, reply.Err)
	}
	return reply, nil
}

// Capabilities implements remote.Target.
func (c *Client) Capabilities() remote.Capabilities {
	return c.caps
}

// ResolveType implements remote.Target.
func (c *Client) ResolveType(name string) (remote.TypeRef, error) {
	reply, err := c.call(&Command{Op: OpResolveType, Name: name})
	if err != nil {
		return nil, err
	}
	return typeRef{name: name, id: reply.Object}, nil
}

// NewArray implements remote.Target.
func (c *Client) NewArray(elem remote.TypeRef, length int) (remote.ArrayRef, error) {
	t, ok := elem.(typeRef)
	if !ok {
		return nil, fmt.Errorf("wire: type ref %q was not resolved by this client", elem.Name())
	}
	reply, err := c.call(&Command{Op: OpNewArray, Type: t.id, Length: length})
	if err != nil {
		return nil, err
	}
	return arrayRef{objectRef{c: c, id: reply.Object}}, nil
}

// MirrorByte implements remote.Target.
func (c *Client) MirrorByte(b byte) remote.Value {
	return ByteValue(b)
}

// Retain implements remote.Target.
func (c *Client) Retain(obj remote.ObjectRef) error {
	_, err := c.call(&Command{Op: OpRetain, Object: obj.ID()})
	return err
}

// NewClassLoader implements remote.Target.
func (c *Client) NewClassLoader() (remote.ClassLoaderRef, error) {
	reply, err := c.call(&Command{Op: OpNewLoader})
	if err != nil {
		return nil, err
	}
	return loaderRef{objectRef{c: c, id: reply.Object}}, nil
}

// DefineClass implements remote.Target.
func (c *Client) DefineClass(loader remote.ClassLoaderRef, name string, data remote.ArrayRef) error {
	_, err := c.call(&Command{
		Op:     OpDefineClass,
		Name:   name,
		Loader: loader.ID(),
		Object: data.ID(),
	})
	return err
}

// Connection implements remote.Target.
func (c *Client) Connection() io.Closer {
	return c.conn
}

// typeRef is a type resolved through this client.
type typeRef struct {
	name string
	id   uint64
}

func (t typeRef) Name() string { return t.name }

// objectRef is an object handle created through this client.
type objectRef struct {
	c  *Client
	id uint64
}

// ID implements remote.ObjectRef.
func (o objectRef) ID() uint64 { return o.id }

type arrayRef struct {
	objectRef
}

// SetValues implements remote.ArrayRef. Mirror values must have been
// created by MirrorByte; anything else is a caller bug.
func (a arrayRef) SetValues(offset int, values []remote.Value, valueOffset, count int) error {
	raw := make([]byte, count)
	for i := 0; i < count; i++ {
		b, ok := values[valueOffset+i].(ByteValue)
		if !ok {
			return fmt.Errorf("wire: value at %d is not a byte mirror", valueOffset+i)
		}
		raw[i] = byte(b)
	}
	_, err := a.c.call(&Command{
		Op:     OpWriteSlice,
		Object: a.id,
		Offset: offset,
		Values: raw,
	})
	return err
}

type loaderRef struct {
	objectRef
}
