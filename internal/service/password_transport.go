package service

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"strings"
)

// decryptTransportPassword 解密前端 AES-CBC 加密的密码
// 密钥来自配置注入，为空表示前端按明文传输；密文为 base64(IV || ciphertext)
func decryptTransportPassword(key, payload string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return payload, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", ErrPasswordTransport
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", ErrPasswordTransport
	}
	if len(raw) < aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", ErrPasswordTransport
	}

	iv := raw[:aes.BlockSize]
	ciphertext := make([]byte, len(raw)-aes.BlockSize)
	copy(ciphertext, raw[aes.BlockSize:])
	if len(ciphertext) == 0 {
		return "", ErrPasswordTransport
	}

	cipher.NewCBCDecrypter(block, iv).CryptBlocks(ciphertext, ciphertext)

	plain, err := pkcs7Unpad(ciphertext, aes.BlockSize)
	if err != nil {
		return "", ErrPasswordTransport
	}
	return string(plain), nil
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrPasswordTransport
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, ErrPasswordTransport
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrPasswordTransport
		}
	}
	return data[:len(data)-padLen], nil
}
